// Package postgres implements the PostgreSQL persistence layer.
package postgres

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: CREATE USERS
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- Migration: Create users table
-- Version: 001

CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY,
    username VARCHAR(50) NOT NULL UNIQUE,
    email VARCHAR(255) NOT NULL UNIQUE,
    password_hash VARCHAR(255) NOT NULL,
    streak_count INTEGER NOT NULL DEFAULT 1,
    last_activity_date DATE,
    daily_goal INTEGER NOT NULL DEFAULT 5,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_streak CHECK (streak_count >= 0),
    CONSTRAINT valid_daily_goal CHECK (daily_goal > 0)
);

CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);
CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
`

const migration001Down = `
DROP TABLE IF EXISTS users;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 002: CREATE DAILY ACTIVITIES
// ══════════════════════════════════════════════════════════════════════════════

const migration002Up = `
-- Migration: Create daily_activities table
-- Version: 002
-- One row per (user, date); concurrent creation races resolve on the
-- unique constraint.

CREATE TABLE IF NOT EXISTS daily_activities (
    id SERIAL PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    date DATE NOT NULL,
    words_added INTEGER NOT NULL DEFAULT 0,
    words_practiced INTEGER NOT NULL DEFAULT 0,
    words_mastered INTEGER NOT NULL DEFAULT 0,
    stories_read INTEGER NOT NULL DEFAULT 0,
    time_spent INTEGER NOT NULL DEFAULT 0,
    daily_goal_completed BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT uq_daily_activities_user_date UNIQUE (user_id, date),
    CONSTRAINT valid_counters CHECK (
        words_added >= 0 AND words_practiced >= 0 AND
        words_mastered >= 0 AND stories_read >= 0 AND time_spent >= 0
    )
);

CREATE INDEX IF NOT EXISTS idx_daily_activities_user_date ON daily_activities(user_id, date DESC);
`

const migration002Down = `
DROP TABLE IF EXISTS daily_activities;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 003: CREATE WORDS
// ══════════════════════════════════════════════════════════════════════════════

const migration003Up = `
-- Migration: Create words table
-- Version: 003

CREATE TABLE IF NOT EXISTS words (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    word VARCHAR(100) NOT NULL,
    meaning TEXT NOT NULL,
    context TEXT NOT NULL DEFAULT '',
    language VARCHAR(10) NOT NULL,
    confidence INTEGER NOT NULL DEFAULT 1,
    learned BOOLEAN NOT NULL DEFAULT FALSE,
    times_practiced INTEGER NOT NULL DEFAULT 0,
    date_added TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    last_practiced TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT uq_words_user_word_language UNIQUE (user_id, word, language),
    CONSTRAINT valid_confidence CHECK (confidence BETWEEN 1 AND 5)
);

CREATE INDEX IF NOT EXISTS idx_words_user_id ON words(user_id, date_added DESC);
CREATE INDEX IF NOT EXISTS idx_words_user_learned ON words(user_id) WHERE learned;
`

const migration003Down = `
DROP TABLE IF EXISTS words;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 004: CREATE STORIES
// ══════════════════════════════════════════════════════════════════════════════

const migration004Up = `
-- Migration: Create stories and user_stories tables
-- Version: 004

CREATE TABLE IF NOT EXISTS stories (
    id UUID PRIMARY KEY,
    author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    title VARCHAR(200) NOT NULL,
    slug VARCHAR(220) NOT NULL UNIQUE,
    content TEXT NOT NULL,
    language VARCHAR(10) NOT NULL,
    difficulty VARCHAR(20) NOT NULL DEFAULT 'intermediate',
    tags TEXT[] NOT NULL DEFAULT '{}',
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_difficulty CHECK (difficulty IN ('beginner', 'intermediate', 'advanced'))
);

CREATE INDEX IF NOT EXISTS idx_stories_slug ON stories(slug);
CREATE INDEX IF NOT EXISTS idx_stories_language_difficulty ON stories(language, difficulty);
CREATE INDEX IF NOT EXISTS idx_stories_created_at ON stories(created_at DESC);

CREATE TABLE IF NOT EXISTS user_stories (
    id SERIAL PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    story_id UUID NOT NULL REFERENCES stories(id) ON DELETE CASCADE,
    saved_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    last_read TIMESTAMP WITH TIME ZONE,

    CONSTRAINT uq_user_stories_user_story UNIQUE (user_id, story_id)
);

CREATE INDEX IF NOT EXISTS idx_user_stories_user_id ON user_stories(user_id, saved_at DESC);
`

const migration004Down = `
DROP TABLE IF EXISTS user_stories;
DROP TABLE IF EXISTS stories;
`

// GetMigrations returns all embedded migrations.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_users",
			UpSQL:   migration001Up,
			DownSQL: migration001Down,
		},
		{
			Version: 2,
			Name:    "create_daily_activities",
			UpSQL:   migration002Up,
			DownSQL: migration002Down,
		},
		{
			Version: 3,
			Name:    "create_words",
			UpSQL:   migration003Up,
			DownSQL: migration003Down,
		},
		{
			Version: 4,
			Name:    "create_stories",
			UpSQL:   migration004Up,
			DownSQL: migration004Down,
		},
	}
}
