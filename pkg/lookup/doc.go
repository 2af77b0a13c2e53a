// Package lookup provides validator.Checker implementations backed by an
// in-memory set, a Redis set, a PostgreSQL column or a MongoDB collection
// field. They power the
// validator.Unique rule:
//
//	pool, err := lookup.ConnectPostgres(ctx, pgCfg)
//	if err != nil {
//		return err
//	}
//	emails, err := lookup.NewPostgresColumn(pool, "users", "email", lookup.FoldCase())
//	if err != nil {
//		return err
//	}
//	form := validator.NewForm().
//		Field("email", emailInput, validator.Email{}, validator.Unique{Checker: emails})
//
// Connection helpers retry with the intervals from RedisConfig,
// PostgresConfig and MongoConfig, which load from the environment through pkg/config:
//
//	cfg, err := config.Load[lookup.RedisConfig]()
//
// All checkers are safe for concurrent use.
package lookup
