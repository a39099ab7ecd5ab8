package store

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql" // MariaDB/MySQL driver
	_ "modernc.org/sqlite"             // pure-Go SQLite driver

	"paperflow/internal/domain"
	"paperflow/internal/port"
)

var _ port.RelationalStore = (*SQLStore)(nil)

// Environment variables recognized for the relational store connection.
// PAPERDB_DSN wins when set; otherwise the URL is assembled as
// {PAPERDB_DRIVER}://{PAPERDB_USER}:{PAPERDB_PASSWORD}@{PAPERDB_HOST}:{PAPERDB_PORT}/{PAPERDB_DATABASE}.
const (
	EnvDSN      = "PAPERDB_DSN"
	EnvDriver   = "PAPERDB_DRIVER"
	EnvUser     = "PAPERDB_USER"
	EnvPassword = "PAPERDB_PASSWORD"
	EnvHost     = "PAPERDB_HOST"
	EnvPort     = "PAPERDB_PORT"
	EnvDatabase = "PAPERDB_DATABASE"
)

// SQLStore is the normalized authors/articles store over database/sql.
type SQLStore struct {
	db     *sql.DB
	driver string
}

// DSNFromEnv resolves the relational store URL from the environment, or
// "" when nothing is configured and the local SQLite fallback applies.
func DSNFromEnv() string {
	if dsn := os.Getenv(EnvDSN); dsn != "" {
		return dsn
	}
	host := os.Getenv(EnvHost)
	if host == "" {
		return ""
	}
	driver := envOr(EnvDriver, "mysql")
	user := envOr(EnvUser, "root")
	pwd := envOr(EnvPassword, "password")
	port := envOr(EnvPort, "3306")
	db := envOr(EnvDatabase, "articles_db")
	return fmt.Sprintf("%s://%s:%s@%s:%s/%s", driver, user, pwd, host, port, db)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// OpenFromEnv opens the store described by the environment, falling back
// to a SQLite file at sqlitePath when no connection URL is configured.
func OpenFromEnv(sqlitePath string) (*SQLStore, error) {
	if dsn := DSNFromEnv(); dsn != "" {
		return OpenURL(dsn)
	}
	return OpenSQLite(sqlitePath)
}

// OpenSQLite opens a local SQLite database file.
func OpenSQLite(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite %s: %v", domain.ErrStoreUnavailable, path, err)
	}
	return &SQLStore{db: db, driver: "sqlite"}, nil
}

// OpenURL opens the store addressed by a URL of the form
// {driver}://{user}:{password}@{host}:{port}/{database}.
func OpenURL(rawURL string) (*SQLStore, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parse dsn: %v", domain.ErrStoreUnavailable, err)
	}

	switch u.Scheme {
	case "mysql", "mariadb":
		pwd, _ := u.User.Password()
		dsn := fmt.Sprintf("%s:%s@tcp(%s)%s?parseTime=true", u.User.Username(), pwd, u.Host, u.Path)
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			return nil, fmt.Errorf("%w: open mysql: %v", domain.ErrStoreUnavailable, err)
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: ping %s: %v", domain.ErrStoreUnavailable, u.Host, err)
		}
		return &SQLStore{db: db, driver: "mysql"}, nil
	case "sqlite":
		return OpenSQLite(strings.TrimPrefix(u.Path, "/"))
	default:
		return nil, fmt.Errorf("%w: unsupported driver %q", domain.ErrStoreUnavailable, u.Scheme)
	}
}

// InitSchema creates the authors and articles tables if absent.
func (s *SQLStore) InitSchema() error {
	idColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if s.driver == "mysql" {
		idColumn = "BIGINT PRIMARY KEY AUTO_INCREMENT"
	}

	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS authors (
			id %s,
			full_name VARCHAR(255) NOT NULL,
			title VARCHAR(255)
		)`, idColumn),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS articles (
			id %s,
			title VARCHAR(512) NOT NULL,
			summary TEXT NOT NULL,
			file_path VARCHAR(512) NOT NULL,
			arxiv_id VARCHAR(64) NOT NULL,
			author_id BIGINT NOT NULL,
			FOREIGN KEY (author_id) REFERENCES authors(id)
		)`, idColumn),
		`CREATE INDEX IF NOT EXISTS idx_authors_full_name ON authors(full_name)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_arxiv_id ON articles(arxiv_id)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("%w: create schema: %v", domain.ErrStoreUnavailable, err)
		}
	}
	return nil
}

// Begin opens one transaction-scoped session for a batch.
func (s *SQLStore) Begin() (port.RelationalSession, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("%w: begin session: %v", domain.ErrStoreUnavailable, err)
	}
	return &SQLSession{tx: tx}, nil
}

// ListArticles reads all article rows joined with their authors, in
// insertion order.
func (s *SQLStore) ListArticles() ([]domain.ArticleWithAuthor, error) {
	rows, err := s.db.Query(`SELECT ar.id, ar.title, ar.summary, ar.file_path, ar.arxiv_id, ar.author_id,
			au.full_name, COALESCE(au.title, '')
		FROM articles ar
		JOIN authors au ON au.id = ar.author_id
		ORDER BY ar.id`)
	if err != nil {
		return nil, fmt.Errorf("%w: list articles: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var out []domain.ArticleWithAuthor
	for rows.Next() {
		var rec domain.ArticleWithAuthor
		if err := rows.Scan(
			&rec.Article.ID, &rec.Article.Title, &rec.Article.Summary,
			&rec.Article.FilePath, &rec.Article.ArxivID, &rec.Article.AuthorID,
			&rec.Author.FullName, &rec.Author.Title,
		); err != nil {
			return nil, fmt.Errorf("%w: scan article: %v", domain.ErrStoreUnavailable, err)
		}
		rec.Author.ID = rec.Article.AuthorID
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close closes the underlying connection pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// SQLSession is one batch transaction. The orchestrator commits once
// after the whole batch and rolls back on the first error.
type SQLSession struct {
	tx   *sql.Tx
	done bool
}

// FindAuthor looks up an author row by full name, case-insensitively.
func (s *SQLSession) FindAuthor(fullName string) (int64, bool, error) {
	var id int64
	err := s.tx.QueryRow(`SELECT id FROM authors WHERE LOWER(full_name) = LOWER(?)`, fullName).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%w: find author %q: %v", domain.ErrStoreUnavailable, fullName, err)
	}
	return id, true, nil
}

// InsertAuthor creates a new author row and returns its generated ID.
func (s *SQLSession) InsertAuthor(fullName, title string) (int64, error) {
	var titleVal any
	if title != "" {
		titleVal = title
	}
	res, err := s.tx.Exec(`INSERT INTO authors (full_name, title) VALUES (?, ?)`, fullName, titleVal)
	if err != nil {
		return 0, fmt.Errorf("%w: insert author %q: %v", domain.ErrPersistence, fullName, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: author id for %q: %v", domain.ErrPersistence, fullName, err)
	}
	return id, nil
}

// InsertArticle creates a new article row unconditionally and returns its
// generated ID.
func (s *SQLSession) InsertArticle(a domain.Article) (int64, error) {
	res, err := s.tx.Exec(
		`INSERT INTO articles (title, summary, file_path, arxiv_id, author_id) VALUES (?, ?, ?, ?, ?)`,
		a.Title, a.Summary, a.FilePath, a.ArxivID, a.AuthorID,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: insert article %q: %v", domain.ErrPersistence, a.ArxivID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: article id for %q: %v", domain.ErrPersistence, a.ArxivID, err)
	}
	return id, nil
}

// Commit commits the batch.
func (s *SQLSession) Commit() error {
	s.done = true
	if err := s.tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit batch: %v", domain.ErrPersistence, err)
	}
	return nil
}

// Rollback aborts the batch. Safe to call after Commit, so callers can
// defer it unconditionally to guarantee the connection is released.
func (s *SQLSession) Rollback() error {
	if s.done {
		return nil
	}
	s.done = true
	return s.tx.Rollback()
}
