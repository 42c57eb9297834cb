package postgres

import (
	"context"
	"strings"

	"job-board-backend/internal/domain"
)

type favoriteRepo struct {
	db DB
}

func NewFavoriteRepository(db DB) domain.FavoriteRepository {
	return &favoriteRepo{db: db}
}

func (r *favoriteRepo) Add(ctx context.Context, userID, vacancyID int64) (*domain.Favorite, error) {
	fav := domain.Favorite{UserID: userID, VacancyID: vacancyID}
	err := r.db.QueryRow(ctx,
		`INSERT INTO favorites (user_id, vacancy_id) VALUES ($1, $2) RETURNING id, added_at`,
		userID, vacancyID,
	).Scan(&fav.ID, &fav.AddedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &fav, nil
}

func (r *favoriteRepo) Remove(ctx context.Context, userID, vacancyID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM favorites WHERE user_id = $1 AND vacancy_id = $2`, userID, vacancyID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *favoriteRepo) Exists(ctx context.Context, userID, vacancyID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND vacancy_id = $2)`,
		userID, vacancyID,
	).Scan(&exists)
	return exists, err
}

func (r *favoriteRepo) FetchByUser(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	// Reuse the vacancy projection with the favorite columns in front.
	query := strings.Replace(vacancySelect, "SELECT", "SELECT f.id, f.added_at,", 1) + `
	JOIN favorites f ON f.vacancy_id = v.id
	WHERE f.user_id = $1
	ORDER BY f.added_at DESC, f.id DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favorites := make([]domain.Favorite, 0)
	for rows.Next() {
		fav := domain.Favorite{UserID: userID}
		v, err := scanVacancy(prefixScanner{row: rows, prefix: []any{&fav.ID, &fav.AddedAt}})
		if err != nil {
			return nil, err
		}
		fav.VacancyID = v.ID
		fav.Vacancy = v
		favorites = append(favorites, fav)
	}
	return favorites, rows.Err()
}

// prefixScanner prepends extra destinations to a Scan call.
type prefixScanner struct {
	row    interface{ Scan(...any) error }
	prefix []any
}

func (s prefixScanner) Scan(dest ...any) error {
	return s.row.Scan(append(append([]any{}, s.prefix...), dest...)...)
}
