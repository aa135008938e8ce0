// Package mocks provides centralized mock implementations for testing.
//
// The store mocks are small in-memory databases: with no function fields set
// they behave like the PostgreSQL stores, including owner scoping and unique
// username/email enforcement. Set a function field to override one method.
//
//	users := mocks.NewMockUserStore()
//	users.GetByIDFn = func(ctx context.Context, id int64) (*domain.User, error) {
//	    return nil, errors.New("connection reset")
//	}
//
// NewMockDB returns a real *sql.DB backed by a driver whose transactions do
// nothing, so code built on store.RunInTransaction runs unchanged against the
// in-memory stores.
package mocks
