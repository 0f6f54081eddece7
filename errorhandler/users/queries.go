package users

const (
	queryCreate = `
		INSERT INTO users (email, name, age)
		VALUES ($1, $2, $3)
		RETURNING id, email, name, age, is_admin, created_at, updated_at
	`

	queryFindByID = `
		SELECT id, email, name, age, is_admin, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	queryFindByEmail = `
		SELECT id, email, name, age, is_admin, created_at, updated_at
		FROM users
		WHERE lower(email) = lower($1)
	`

	queryList = `
		SELECT id, email, name, age, is_admin, created_at, updated_at
		FROM users
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2
	`

	queryCount = `
		SELECT COUNT(*) FROM users
	`

	queryDelete = `
		DELETE FROM users
		WHERE id = $1
	`
)
