package db

import (
	"themis-backend/internal/domain/audit"
	"themis-backend/internal/domain/blacklist"
	"themis-backend/internal/domain/puc"
	"themis-backend/internal/domain/user"
	"themis-backend/internal/domain/visit"
	"themis-backend/internal/domain/visitor"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Models in dependency order.
func Models() []any {
	return []any{
		&user.Role{},
		&puc.Category{},
		&puc.CrimeType{},
		&visitor.Visitor{},
		&user.User{},
		&puc.PUC{},
		&visitor.ApprovedVisitor{},
		&visit.Log{},
		&blacklist.Entry{},
		&audit.Log{},
	}
}

// Migrate creates or updates the schema and seeds the fixed roles.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	return SeedRoles(db)
}

func SeedRoles(db *gorm.DB) error {
	roles := make([]user.Role, 0, len(user.RoleNames))
	for _, id := range []uint{user.RoleAdmin, user.RoleOfficer, user.RoleVisitor} {
		roles = append(roles, user.Role{RoleID: id, Name: user.RoleNames[id]})
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error
}
