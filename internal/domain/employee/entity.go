package employee

import "time"

// Employee is the minimal read-side directory entry the engine needs for
// headcount, identity population and absent derivation. Employee CRUD lives
// elsewhere.
type Employee struct {
	ID        string
	FullName  string
	Active    bool
	CreatedAt time.Time
}
