// ABOUTME: SQL schema definition for the fitness tracker database.
// ABOUTME: Workouts, personal records, body metrics, profile, goals, reference data.
package storage

const schema = `
CREATE TABLE IF NOT EXISTS workouts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    exercise_name TEXT NOT NULL,
    kind TEXT NOT NULL,
    date TEXT NOT NULL,
    duration_minutes INTEGER NOT NULL,
    calories_burned REAL NOT NULL DEFAULT 0,
    distance_km REAL,
    sets INTEGER,
    reps INTEGER,
    weight_kg REAL,
    volume_kg REAL,
    bodyweight_factor REAL
);

CREATE TABLE IF NOT EXISTS personal_records (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    exercise_name TEXT UNIQUE NOT NULL,
    duration_minutes INTEGER NOT NULL DEFAULT 0,
    reps INTEGER NOT NULL DEFAULT 0,
    weight_kg REAL NOT NULL DEFAULT 0,
    date TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS body_metrics (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    age INTEGER NOT NULL,
    height_cm REAL NOT NULL,
    weight_kg REAL NOT NULL,
    bmi REAL NOT NULL,
    date TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS user_profile (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    age INTEGER NOT NULL,
    height_cm REAL NOT NULL,
    weight_kg REAL NOT NULL,
    sex TEXT NOT NULL,
    bmi REAL NOT NULL,
    bmr REAL NOT NULL,
    current_streak INTEGER NOT NULL DEFAULT 0,
    last_workout_date TEXT
);

CREATE TABLE IF NOT EXISTS goals (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    exercise_name TEXT,
    start_date TEXT NOT NULL,
    end_date TEXT,
    goal_type TEXT NOT NULL,
    current_value REAL NOT NULL DEFAULT 0,
    target_value REAL NOT NULL,
    status TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS activities (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    activity_name TEXT NOT NULL,
    kind TEXT NOT NULL,
    category TEXT NOT NULL,
    met_value REAL NOT NULL,
    bodyweight_factor REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS quotes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    level TEXT NOT NULL,
    quote TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_workouts_exercise_date ON workouts(exercise_name, date);
CREATE INDEX IF NOT EXISTS idx_workouts_date ON workouts(date);
CREATE INDEX IF NOT EXISTS idx_goals_status ON goals(status);
`
