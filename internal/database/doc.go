// Package database provides the data access layer for the phrasebook.
//
// # Architecture
//
//	database/
//	├── database.go      # Adapter ownership, install of prebuilt files
//	├── schema.go        # Drop/create of the six tables and their indexes
//	└── phrasebook/      # Read-only queries over seeded data
//
// # Usage
//
//	db, err := database.NewDatabase(ctx, platform.Config{Engine: "auto", Path: "./tradui.db"})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	// Recreate every table and stamp the status row
//	err = db.Adapter.Transact(ctx, func(tx platform.Executor) error {
//	    return db.Schema.Rebuild(ctx, tx)
//	})
//
//	repo := phrasebook.NewRepository(db.Adapter)
//	categories, err := repo.GetCategories(ctx, entities.LanguageEnglish)
//
// Rebuild never migrates: every call starts from empty tables.
package database
