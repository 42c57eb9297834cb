package domain

// EntityKind names a record type for access checks.
type EntityKind string

const (
	KindCompany     EntityKind = "company"
	KindVacancy     EntityKind = "vacancy"
	KindResume      EntityKind = "resume"
	KindApplication EntityKind = "application"
	KindFavorite    EntityKind = "favorite"
)

var creatorRoles = map[EntityKind]Role{
	KindCompany:     RoleEmployer,
	KindVacancy:     RoleEmployer,
	KindResume:      RoleSeeker,
	KindApplication: RoleSeeker,
	KindFavorite:    RoleSeeker,
}

// CanCreate reports whether the principal's role may create records of kind.
func CanCreate(p Principal, kind EntityKind) bool {
	role, ok := creatorRoles[kind]
	return ok && p.IsAuthenticated() && p.Role == role
}

// CanMutate reports whether the principal owns the record with ownerID.
func CanMutate(p Principal, ownerID int64) bool {
	return p.IsAuthenticated() && p.ID == ownerID
}
