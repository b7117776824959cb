// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - platform.Executor: Execute/Query against a handle or a transaction (internal/platform/platform.go)
//   - platform.Adapter: One open database engine; sqlx, sql or gorm (internal/platform/platform.go)
//   - PhrasebookStore: Read-only phrasebook queries (internal/http/stores.go)
//
// ## Rebuild Interfaces
//
//   - StatusReader, SchemaRebuilder, SeedLoader: the parts a rebuild is made of (internal/datasync/controller.go)
//   - seed.Source: Where seed documents come from (internal/seed/source.go)
//   - Rebuilder: Forced rebuild, used by the task queue and the admin endpoint
//
// ## External Service Interfaces
//
//   - translate.Client: Remote free-text translation (internal/translate/client.go)
//   - platform.Alerter: Shows fatal user errors (internal/platform/alert.go)
//
// # Adding a New Database Engine
//
//  1. Implement platform.Adapter in internal/platform/
//
//     type pgxAdapter struct {
//         db *sql.DB
//     }
//
//     func (a *pgxAdapter) Transact(ctx context.Context, fn func(tx Executor) error) error
//
//  2. Add the engine name to Engines() and the open switch in Open
//
//  3. Add the name to config.DatabaseEngines
//
// # Adding a New Seed Source
//
//  1. Implement seed.Source
//
//     type S3Source struct {
//         bucket string
//     }
//
//     func (s *S3Source) ReadFile(ctx context.Context, name string) ([]byte, error)
//     func (s *S3Source) String() string
//
//  2. Add a SEED_SOURCE value in internal/config and select it in entrypoint.NewSeedSource
//
// A missing document should be returned as a *platform.FatalUserError so the caller alerts
// the user instead of retrying.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
