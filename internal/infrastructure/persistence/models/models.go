// Package models holds the GORM persistence models. They form the
// anti-corruption layer between the domain and the database.
package models

// All returns every model, in dependency order, for schema migration.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&MachineModel{},
		&InstrumentModel{},
		&BreakdownTicketModel{},
		&PreventiveTicketModel{},
		&CalibrationTicketModel{},
	}
}
