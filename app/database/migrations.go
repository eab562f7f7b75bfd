package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates the schema and applies incremental updates.
// Every statement is idempotent so the function is safe on every boot.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	if err := createTables(db); err != nil {
		return err
	}
	if err := addResultColumns(db); err != nil {
		return err
	}
	if err := addStudentColumns(db); err != nil {
		return err
	}
	if err := addResultIdentityIndex(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createTables(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS students (
			id SERIAL PRIMARY KEY,
			student_id TEXT UNIQUE NOT NULL,
			fullname TEXT NOT NULL,
			class TEXT NOT NULL,
			password TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS admins (
			id SERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS teachers (
			id SERIAL PRIMARY KEY,
			fullname TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			session TEXT
		);
		CREATE TABLE IF NOT EXISTS classes (
			id SERIAL PRIMARY KEY,
			name TEXT UNIQUE NOT NULL
		);
		CREATE TABLE IF NOT EXISTS subjects (
			id SERIAL PRIMARY KEY,
			name TEXT UNIQUE NOT NULL
		);
		CREATE TABLE IF NOT EXISTS teacher_classes (
			id SERIAL PRIMARY KEY,
			teacher_id INTEGER NOT NULL REFERENCES teachers(id),
			class_id INTEGER NOT NULL REFERENCES classes(id)
		);
		CREATE TABLE IF NOT EXISTS sessions (
			id SERIAL PRIMARY KEY,
			name TEXT UNIQUE NOT NULL
		);
		CREATE TABLE IF NOT EXISTS results (
			id SERIAL PRIMARY KEY,
			student_id TEXT NOT NULL,
			subject TEXT NOT NULL,
			score NUMERIC(5,2),
			grade TEXT,
			term TEXT NOT NULL,
			session TEXT NOT NULL,
			class TEXT NOT NULL,
			approved BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS remarks (
			id SERIAL PRIMARY KEY,
			student_id TEXT NOT NULL,
			class TEXT NOT NULL,
			term TEXT NOT NULL,
			session TEXT NOT NULL,
			remark TEXT NOT NULL
		);
	`
	if _, err := db.Exec(query); err != nil {
		log.Printf("Failed to create tables: %v", err)
		return err
	}
	return nil
}

// addResultColumns backfills columns that arrived after the first
// schema: CA components, per-subject remark and the approval flag.
func addResultColumns(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM information_schema.columns
				WHERE table_name = 'results' AND column_name = 'ca1'
			) THEN
				ALTER TABLE results ADD COLUMN ca1 NUMERIC(5,2);
				ALTER TABLE results ADD COLUMN ca2 NUMERIC(5,2);
				ALTER TABLE results ADD COLUMN ca3 NUMERIC(5,2);
			END IF;
			IF NOT EXISTS (
				SELECT 1 FROM information_schema.columns
				WHERE table_name = 'results' AND column_name = 'remark'
			) THEN
				ALTER TABLE results ADD COLUMN remark TEXT;
			END IF;
			IF NOT EXISTS (
				SELECT 1 FROM information_schema.columns
				WHERE table_name = 'results' AND column_name = 'approved'
			) THEN
				ALTER TABLE results ADD COLUMN approved BOOLEAN NOT NULL DEFAULT false;
			END IF;
		END $$;
	`
	if _, err := db.Exec(query); err != nil {
		log.Printf("Failed to run migration for results columns: %v", err)
		return err
	}
	return nil
}

// addStudentColumns backfills the demographic and photo fields.
func addStudentColumns(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM information_schema.columns
				WHERE table_name = 'students' AND column_name = 'photo'
			) THEN
				ALTER TABLE students ADD COLUMN photo TEXT;
			END IF;
			IF NOT EXISTS (
				SELECT 1 FROM information_schema.columns
				WHERE table_name = 'students' AND column_name = 'session'
			) THEN
				ALTER TABLE students ADD COLUMN session TEXT;
			END IF;
			IF NOT EXISTS (
				SELECT 1 FROM information_schema.columns
				WHERE table_name = 'students' AND column_name = 'gender'
			) THEN
				ALTER TABLE students ADD COLUMN gender TEXT;
				ALTER TABLE students ADD COLUMN dob TEXT;
			END IF;
		END $$;
	`
	if _, err := db.Exec(query); err != nil {
		log.Printf("Failed to run migration for student columns: %v", err)
		return err
	}
	return nil
}

// addResultIdentityIndex enforces at most one result per identity key.
// The upsert absorbs duplicates before they reach the index; the index
// backstops concurrent writers.
func addResultIdentityIndex(db *sql.DB) error {
	query := `
		CREATE UNIQUE INDEX IF NOT EXISTS results_identity_key
		ON results (student_id, subject, term, session, class)
	`
	if _, err := db.Exec(query); err != nil {
		log.Printf("Failed to create results identity index: %v", err)
		return err
	}
	return nil
}
