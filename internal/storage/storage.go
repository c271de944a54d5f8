package storage

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/tursodatabase/libsql-client-go/libsql"

	"github.com/technique-ps/technique/internal/config"
)

type Storage struct {
	DB *sql.DB
}

func NewStorage() *Storage {
	// A .env file is optional, the config file can carry the URL instead.
	godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	url := cfg.DB.ConnectionString
	if url == "" {
		fmt.Fprintln(os.Stderr, "No database configured: set TECHNIQUE_DATABASE_URL or database.connection_string in config.toml")
		os.Exit(1)
	}

	db, err := sql.Open("libsql", url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open db %s: %s\n", url, err)
		os.Exit(1)
	}

	if err := initializeDB(db); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}

	return &Storage{DB: db}
}

func initializeDB(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS user_roles (
            user_id TEXT NOT NULL,
            role TEXT NOT NULL CHECK (role IN ('admin', 'coach', 'client')),
            PRIMARY KEY (user_id, role)
        );

        CREATE TABLE IF NOT EXISTS patients (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            owner_user_id TEXT NOT NULL,
            created_at TEXT NOT NULL
        );

        CREATE TABLE IF NOT EXISTS coach_patients (
            coach_user_id TEXT NOT NULL,
            patient_id TEXT NOT NULL,
            PRIMARY KEY (coach_user_id, patient_id),
            FOREIGN KEY (patient_id) REFERENCES patients(id) ON DELETE CASCADE
        );

        CREATE TABLE IF NOT EXISTS client_links (
            client_user_id TEXT NOT NULL,
            patient_id TEXT NOT NULL,
            PRIMARY KEY (client_user_id, patient_id),
            FOREIGN KEY (patient_id) REFERENCES patients(id) ON DELETE CASCADE
        );

        CREATE TABLE IF NOT EXISTS patient_profiles (
            patient_id TEXT PRIMARY KEY,
            sex TEXT,
            dob TEXT,
            bodyweight_kg REAL,
            presumed_level TEXT NOT NULL DEFAULT 'intermediate',
            FOREIGN KEY (patient_id) REFERENCES patients(id) ON DELETE CASCADE
        );

        CREATE TABLE IF NOT EXISTS exercises (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL UNIQUE,
            category TEXT,
            laterality TEXT NOT NULL DEFAULT 'bilateral',
            implement TEXT,
            primary_muscles TEXT,
            notes TEXT,
            created_at TEXT NOT NULL
        );

        CREATE TABLE IF NOT EXISTS rep_schemes (
            id TEXT PRIMARY KEY,
            goal TEXT NOT NULL,
            phase TEXT NOT NULL,
            reps_min INTEGER NOT NULL,
            reps_max INTEGER NOT NULL,
            sets_min INTEGER NOT NULL,
            sets_max INTEGER NOT NULL,
            pct_1rm_min REAL,
            pct_1rm_max REAL,
            rpe_min INTEGER,
            rpe_max INTEGER,
            rest_sec_min INTEGER,
            rest_sec_max INTEGER,
            intent TEXT,
            UNIQUE (goal, phase)
        );

        CREATE TABLE IF NOT EXISTS norm_strength_standards (
            id TEXT PRIMARY KEY,
            exercise_id TEXT NOT NULL,
            sex TEXT NOT NULL,
            age_min INTEGER NOT NULL,
            age_max INTEGER NOT NULL,
            metric TEXT NOT NULL,
            poor REAL NOT NULL,
            fair REAL NOT NULL,
            good REAL NOT NULL,
            excellent REAL NOT NULL,
            source TEXT,
            notes TEXT,
            UNIQUE (exercise_id, sex, age_min, age_max, metric),
            FOREIGN KEY (exercise_id) REFERENCES exercises(id) ON DELETE CASCADE
        );

        CREATE TABLE IF NOT EXISTS strength_estimates (
            patient_id TEXT NOT NULL,
            exercise_id TEXT NOT NULL,
            as_of_date TEXT NOT NULL,
            estimated_1rm_kg REAL,
            estimated_rel_1rm_bw REAL,
            level_used TEXT,
            sex_used TEXT,
            age_used INTEGER,
            bw_used REAL,
            method TEXT NOT NULL,
            notes TEXT,
            PRIMARY KEY (patient_id, exercise_id),
            FOREIGN KEY (patient_id) REFERENCES patients(id) ON DELETE CASCADE,
            FOREIGN KEY (exercise_id) REFERENCES exercises(id) ON DELETE CASCADE
        );

        CREATE TABLE IF NOT EXISTS sc_blocks (
            id TEXT PRIMARY KEY,
            patient_id TEXT NOT NULL,
            start_date TEXT NOT NULL,
            weeks INTEGER NOT NULL,
            model TEXT NOT NULL,
            deload_week INTEGER NOT NULL,
            sessions_per_week INTEGER NOT NULL,
            goal TEXT,
            notes TEXT,
            created_at TEXT NOT NULL,
            FOREIGN KEY (patient_id) REFERENCES patients(id) ON DELETE CASCADE
        );

        CREATE TABLE IF NOT EXISTS sc_weeks (
            id TEXT PRIMARY KEY,
            block_id TEXT NOT NULL,
            week_no INTEGER NOT NULL,
            week_start TEXT NOT NULL,
            focus TEXT,
            deload_flag INTEGER NOT NULL DEFAULT 0,
            notes TEXT,
            UNIQUE (block_id, week_no),
            FOREIGN KEY (block_id) REFERENCES sc_blocks(id) ON DELETE CASCADE
        );

        CREATE TABLE IF NOT EXISTS sc_sessions (
            id TEXT PRIMARY KEY,
            week_id TEXT NOT NULL,
            session_label TEXT NOT NULL,
            day_hint TEXT,
            notes TEXT,
            UNIQUE (week_id, session_label),
            FOREIGN KEY (week_id) REFERENCES sc_weeks(id) ON DELETE CASCADE
        );

        CREATE TABLE IF NOT EXISTS sc_session_templates (
            id TEXT PRIMARY KEY,
            block_id TEXT NOT NULL,
            session_label TEXT NOT NULL,
            title TEXT,
            notes TEXT,
            UNIQUE (block_id, session_label),
            FOREIGN KEY (block_id) REFERENCES sc_blocks(id) ON DELETE CASCADE
        );

        CREATE TABLE IF NOT EXISTS sc_template_exercises (
            id TEXT PRIMARY KEY,
            template_id TEXT NOT NULL,
            sort_order INTEGER NOT NULL DEFAULT 0,
            group_key TEXT,
            group_order INTEGER,
            exercise_id TEXT NOT NULL,
            anchor_exercise_id TEXT,
            mode TEXT NOT NULL DEFAULT 'reps',
            sets INTEGER NOT NULL,
            reps_start INTEGER,
            reps_step INTEGER NOT NULL DEFAULT 0,
            reps_cap INTEGER,
            time_start_sec INTEGER,
            time_step_sec INTEGER NOT NULL DEFAULT 0,
            time_cap_sec INTEGER,
            pct_1rm_start REAL,
            pct_1rm_step REAL NOT NULL DEFAULT 0,
            pct_1rm_cap REAL,
            load_start_kg REAL,
            load_increment_kg REAL NOT NULL DEFAULT 0,
            rpe_target INTEGER,
            rest_sec INTEGER,
            intent TEXT,
            notes TEXT,
            FOREIGN KEY (template_id) REFERENCES sc_session_templates(id) ON DELETE CASCADE,
            FOREIGN KEY (exercise_id) REFERENCES exercises(id),
            FOREIGN KEY (anchor_exercise_id) REFERENCES exercises(id)
        );

        CREATE TABLE IF NOT EXISTS sc_week_targets (
            id TEXT PRIMARY KEY,
            template_exercise_id TEXT NOT NULL,
            week_no INTEGER NOT NULL,
            sets INTEGER NOT NULL,
            reps INTEGER,
            time_sec INTEGER,
            pct_1rm REAL,
            load_kg REAL,
            rpe_target INTEGER,
            rest_sec INTEGER,
            intent TEXT,
            notes TEXT,
            actual_sets INTEGER,
            actual_reps INTEGER,
            actual_time_sec INTEGER,
            actual_load_kg REAL,
            completed_flag INTEGER NOT NULL DEFAULT 0,
            actual_notes TEXT,
            UNIQUE (template_exercise_id, week_no),
            FOREIGN KEY (template_exercise_id) REFERENCES sc_template_exercises(id) ON DELETE CASCADE
        );

        CREATE TABLE IF NOT EXISTS rides (
            id TEXT PRIMARY KEY,
            patient_id TEXT NOT NULL,
            ride_date TEXT NOT NULL,
            distance_km REAL NOT NULL,
            duration_min INTEGER NOT NULL,
            rpe INTEGER,
            notes TEXT,
            created_at TEXT NOT NULL,
            FOREIGN KEY (patient_id) REFERENCES patients(id) ON DELETE CASCADE
        );

        CREATE TABLE IF NOT EXISTS weekly_plan (
            patient_id TEXT NOT NULL,
            week_start TEXT NOT NULL,
            planned_km REAL,
            planned_hours REAL,
            phase TEXT,
            notes TEXT,
            PRIMARY KEY (patient_id, week_start),
            FOREIGN KEY (patient_id) REFERENCES patients(id) ON DELETE CASCADE
        );

        CREATE TABLE IF NOT EXISTS strava_tokens (
            patient_id TEXT PRIMARY KEY,
            access_token TEXT NOT NULL,
            refresh_token TEXT NOT NULL,
            expires_at INTEGER NOT NULL,
            athlete_id INTEGER,
            scope TEXT,
            FOREIGN KEY (patient_id) REFERENCES patients(id) ON DELETE CASCADE
        );

        CREATE TABLE IF NOT EXISTS strava_synced (
            patient_id TEXT NOT NULL,
            activity_id INTEGER NOT NULL,
            PRIMARY KEY (patient_id, activity_id),
            FOREIGN KEY (patient_id) REFERENCES patients(id) ON DELETE CASCADE
        );
    `)

	if err != nil {
		return fmt.Errorf("Failed to create tables: %w", err)
	}

	return nil
}
