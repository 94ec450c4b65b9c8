package store

import (
	"context"

	"github.com/roach88/registry/internal/domain"
)

// InsertUser writes an operator account. The linked person must exist.
func (q *Queries) InsertUser(ctx context.Context, u domain.User) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO users (uid, pwd, utype, person_id, city)
		VALUES (?, ?, ?, ?, ?)
	`, u.UID, u.Password, string(u.Role), u.PersonID, u.City)
	return classify("insert user", err)
}

// FindUser returns the account matching both uid and password.
// Returns ErrNotFound when either does not match.
func (q *Queries) FindUser(ctx context.Context, uid, pwd string) (domain.User, error) {
	var u domain.User
	var role string
	err := q.db.QueryRowContext(ctx, `
		SELECT u.uid, u.pwd, u.utype, u.person_id, p.fname, p.lname, u.city
		FROM users u
		JOIN persons p ON p.id = u.person_id
		WHERE u.uid = ? AND u.pwd = ?
	`, uid, pwd).Scan(&u.UID, &u.Password, &role, &u.PersonID, &u.Name.First, &u.Name.Last, &u.City)
	if err != nil {
		return domain.User{}, classify("find user", err)
	}
	u.Role = domain.Role(role)
	return u, nil
}
