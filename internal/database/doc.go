// Package database provides the data access layer for the application.
//
// # Architecture
//
// Data is modelled as collections of documents addressed by deterministic
// composite ids, written with merge semantics and atomic counters. Every
// collection is a SQLite table managed by GORM and those semantics are
// expressed with upserts:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── progress/        # user_progress + study_logs (completion, counters)
//	├── segments/        # books + book_segments (imported text)
//	├── words/           # user_words + user_word_contexts
//	├── highlights/      # user_highlights (append-only)
//	└── insights/        # user_insights (one note per segment)
//
// # Write semantics
//
//   - Merge: INSERT ... ON CONFLICT(id) DO UPDATE SET <only the fields the
//     operation writes>. created_at is never part of the update set.
//   - Increment: ON CONFLICT(id) DO UPDATE SET counter = counter + ?.
//   - Absent documents: lookups return (nil, nil) rather than an error.
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./app.db")
//
//	progressRepo := progress.NewRepository(db.DB)
//	wordsRepo := words.NewRepository(db.DB)
//
// Each repository satisfies the narrow Store interface declared by the
// service that consumes it, checked at compile time in the repository file:
//
//	var _ annotations.WordStore = (*Repository)(nil)
package database
