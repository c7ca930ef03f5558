package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/konarsubhojit/rest-api-send-requests/internal/model"

	_ "modernc.org/sqlite"
)

const (
	dbFile = "restcli.db"

	// Secure file permissions - owner read/write only
	secureFileMode = 0600 // -rw-------
	secureDirMode  = 0700 // drwx------
)

// parseJSONHeaders safely parses JSON headers, returning an empty map on error
func parseJSONHeaders(jsonStr string) (map[string]string, error) {
	if jsonStr == "" {
		return make(map[string]string), nil
	}

	var headers map[string]string
	if err := json.Unmarshal([]byte(jsonStr), &headers); err != nil {
		return make(map[string]string), fmt.Errorf("failed to parse headers JSON: %w", err)
	}

	if headers == nil {
		headers = make(map[string]string)
	}
	return headers, nil
}

// parseJSONRows safely parses JSON key/value rows, returning an empty list on error
func parseJSONRows(jsonStr string) []model.KeyValue {
	rows := []model.KeyValue{}
	if jsonStr == "" {
		return rows
	}
	if err := json.Unmarshal([]byte(jsonStr), &rows); err != nil {
		return []model.KeyValue{}
	}
	return rows
}

// ensureSecureFile creates a file with secure permissions if it doesn't exist,
// or verifies/fixes permissions if it does exist. This prevents a TOCTOU race
// condition where the file could be created with insecure default permissions.
func ensureSecureFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		// File doesn't exist - create it with secure permissions
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, secureFileMode)
		if err != nil {
			return fmt.Errorf("failed to create secure file: %w", err)
		}
		f.Close()
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	// File exists - check and fix permissions if needed
	if info.Mode().Perm() != secureFileMode {
		if err := os.Chmod(path, secureFileMode); err != nil {
			return fmt.Errorf("failed to set secure permissions: %w", err)
		}
	}
	return nil
}

// SQLiteStorage handles SQLite database persistence
type SQLiteStorage struct {
	db      *sql.DB
	dataDir string
}

// NewStorage creates a new SQLite storage instance under ~/.restcli
func NewStorage() (*SQLiteStorage, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewStorageAt(filepath.Join(homeDir, ".restcli"))
}

// NewStorageAt creates a SQLite storage instance rooted at dataDir
func NewStorageAt(dataDir string) (*SQLiteStorage, error) {
	if err := os.MkdirAll(dataDir, secureDirMode); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, dbFile)

	// Create database file with secure permissions if it doesn't exist
	// This avoids a race condition where the file is created with default
	// permissions and then chmod'd afterward
	if err := ensureSecureFile(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStorage{db: db, dataDir: dataDir}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// initSchema creates the database tables if they don't exist
func (s *SQLiteStorage) initSchema() error {
	schema := `
	-- History table (stores Request + embedded Response)
	CREATE TABLE IF NOT EXISTS history (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		method TEXT NOT NULL,
		url TEXT NOT NULL,
		headers TEXT DEFAULT '{}',
		body TEXT DEFAULT '',
		response_status_code INTEGER,
		response_status TEXT,
		response_headers TEXT,
		response_body TEXT,
		response_duration_ms INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_history_timestamp ON history(timestamp DESC);

	-- Collections table
	CREATE TABLE IF NOT EXISTS collections (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT UNIQUE NOT NULL
	);

	-- Saved requests (belongs to collection, stores the editable request form)
	CREATE TABLE IF NOT EXISTS saved_requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		collection_id INTEGER NOT NULL,
		name TEXT DEFAULT '',
		method TEXT NOT NULL,
		base_url TEXT NOT NULL,
		path TEXT DEFAULT '',
		auth_token TEXT DEFAULT '',
		parameters TEXT DEFAULT '[]',
		headers TEXT DEFAULT '[]',
		body_type TEXT DEFAULT 'none',
		body_content TEXT DEFAULT '',
		position INTEGER NOT NULL,
		FOREIGN KEY (collection_id) REFERENCES collections(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_saved_requests_collection ON saved_requests(collection_id, position);

	-- Aliases table
	CREATE TABLE IF NOT EXISTS aliases (
		name TEXT PRIMARY KEY,
		url TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// History Operations
// =============================================================================

// LoadHistory loads the request history from the database
func (s *SQLiteStorage) LoadHistory() (*model.History, error) {
	rows, err := s.db.Query(`
		SELECT id, timestamp, method, url, headers, body,
		       response_status_code, response_status, response_headers,
		       response_body, response_duration_ms
		FROM history
		ORDER BY timestamp DESC
		LIMIT 100`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := &model.History{Requests: []model.Request{}}

	for rows.Next() {
		req, err := scanHistoryRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		history.Requests = append(history.Requests, *req)
	}

	return history, rows.Err()
}

// AddToHistory adds a request to history
func (s *SQLiteStorage) AddToHistory(req model.Request) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Insert the new request
	if err := insertHistoryRequest(tx, req); err != nil {
		return err
	}

	// Enforce 100-request limit by deleting oldest entries
	_, err = tx.Exec(`
		DELETE FROM history
		WHERE id NOT IN (
			SELECT id FROM history ORDER BY timestamp DESC LIMIT 100
		)`)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// insertHistoryRequest is a helper to insert a request into history
func insertHistoryRequest(tx *sql.Tx, req model.Request) error {
	headersJSON, _ := json.Marshal(req.Headers)

	var respStatusCode, respDurationMs sql.NullInt64
	var respStatus, respHeaders, respBody sql.NullString

	if req.Response != nil {
		respStatusCode = sql.NullInt64{Int64: int64(req.Response.StatusCode), Valid: true}
		respStatus = sql.NullString{String: req.Response.Status, Valid: true}
		respHeadersJSON, _ := json.Marshal(req.Response.Headers)
		respHeaders = sql.NullString{String: string(respHeadersJSON), Valid: true}
		respBody = sql.NullString{String: req.Response.Body, Valid: true}
		respDurationMs = sql.NullInt64{Int64: req.Response.DurationMs, Valid: true}
	}

	_, err := tx.Exec(`
		INSERT OR REPLACE INTO history (
			id, timestamp, method, url, headers, body,
			response_status_code, response_status, response_headers,
			response_body, response_duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.ID, req.Timestamp, req.Method, req.URL, string(headersJSON), req.Body,
		respStatusCode, respStatus, respHeaders, respBody, respDurationMs,
	)
	return err
}

// ClearHistory clears all history
func (s *SQLiteStorage) ClearHistory() error {
	_, err := s.db.Exec("DELETE FROM history")
	return err
}

// GetHistoryRequest gets a specific request by ID
func (s *SQLiteStorage) GetHistoryRequest(id string) (*model.Request, error) {
	row := s.db.QueryRow(`
		SELECT id, timestamp, method, url, headers, body,
		       response_status_code, response_status, response_headers,
		       response_body, response_duration_ms
		FROM history
		WHERE id = ?`, id)

	req, err := scanHistoryRow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// scanHistoryRow reads one history row through the given Scan function
func scanHistoryRow(scan func(dest ...any) error) (*model.Request, error) {
	var req model.Request
	var headersJSON string
	var respStatusCode, respDurationMs sql.NullInt64
	var respStatus, respHeaders, respBody sql.NullString

	err := scan(
		&req.ID, &req.Timestamp, &req.Method, &req.URL,
		&headersJSON, &req.Body,
		&respStatusCode, &respStatus, &respHeaders,
		&respBody, &respDurationMs,
	)
	if err != nil {
		return nil, err
	}

	// Parse headers JSON (errors are logged but don't fail the operation)
	req.Headers, _ = parseJSONHeaders(headersJSON)

	// Build response if present
	if respStatusCode.Valid {
		req.Response = &model.Response{
			StatusCode: int(respStatusCode.Int64),
			Status:     respStatus.String,
			Body:       respBody.String,
			DurationMs: respDurationMs.Int64,
		}
		if respHeaders.Valid {
			req.Response.Headers, _ = parseJSONHeaders(respHeaders.String)
		} else {
			req.Response.Headers = make(map[string]string)
		}
	}

	return &req, nil
}

// =============================================================================
// Collection Operations
// =============================================================================

// LoadCollections loads all collections from the database
func (s *SQLiteStorage) LoadCollections() (*model.Collections, error) {
	collections := &model.Collections{Collections: make(map[string]model.Collection)}

	// Load all collections
	colRows, err := s.db.Query("SELECT id, name FROM collections")
	if err != nil {
		return nil, err
	}
	defer colRows.Close()

	type colInfo struct {
		id   int64
		name string
	}
	var cols []colInfo

	for colRows.Next() {
		var info colInfo
		if err := colRows.Scan(&info.id, &info.name); err != nil {
			return nil, err
		}
		cols = append(cols, info)
	}
	if err := colRows.Err(); err != nil {
		return nil, err
	}

	// Load requests for each collection
	for _, col := range cols {
		requests, err := s.loadSavedRequests(col.id)
		if err != nil {
			return nil, err
		}
		collections.Collections[col.name] = model.Collection{
			Name:     col.name,
			Requests: requests,
		}
	}

	return collections, nil
}

// CreateCollection creates a new collection
func (s *SQLiteStorage) CreateCollection(name string) error {
	_, err := s.db.Exec("INSERT OR IGNORE INTO collections (name) VALUES (?)", name)
	return err
}

// DeleteCollection deletes a collection
func (s *SQLiteStorage) DeleteCollection(name string) error {
	_, err := s.db.Exec("DELETE FROM collections WHERE name = ?", name)
	return err
}

// GetCollection gets a collection by name
func (s *SQLiteStorage) GetCollection(name string) (*model.Collection, error) {
	var colID int64
	err := s.db.QueryRow("SELECT id FROM collections WHERE name = ?", name).Scan(&colID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	requests, err := s.loadSavedRequests(colID)
	if err != nil {
		return nil, err
	}

	return &model.Collection{Name: name, Requests: requests}, nil
}

// loadSavedRequests loads the requests of one collection in saved order
func (s *SQLiteStorage) loadSavedRequests(collectionID int64) ([]model.SavedRequest, error) {
	rows, err := s.db.Query(`
		SELECT name, method, base_url, path, auth_token, parameters, headers, body_type, body_content
		FROM saved_requests
		WHERE collection_id = ?
		ORDER BY position`, collectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []model.SavedRequest{}
	for rows.Next() {
		var saved model.SavedRequest
		var paramsJSON, headersJSON, bodyType string
		err := rows.Scan(
			&saved.Name, &saved.Request.Method, &saved.Request.BaseURL, &saved.Request.Path,
			&saved.Request.AuthToken, &paramsJSON, &headersJSON, &bodyType,
			&saved.Request.BodyContent,
		)
		if err != nil {
			return nil, err
		}
		saved.Request.Parameters = parseJSONRows(paramsJSON)
		saved.Request.Headers = parseJSONRows(headersJSON)
		saved.Request.BodyType = model.BodyType(bodyType)
		requests = append(requests, saved)
	}

	return requests, rows.Err()
}

// AddToCollection adds a request to a collection
func (s *SQLiteStorage) AddToCollection(collectionName string, req model.SavedRequest) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Get or create collection
	var colID int64
	err = tx.QueryRow("SELECT id FROM collections WHERE name = ?", collectionName).Scan(&colID)
	if err == sql.ErrNoRows {
		result, err := tx.Exec("INSERT INTO collections (name) VALUES (?)", collectionName)
		if err != nil {
			return err
		}
		colID, _ = result.LastInsertId()
	} else if err != nil {
		return err
	}

	// Get next position
	var maxPos sql.NullInt64
	tx.QueryRow("SELECT MAX(position) FROM saved_requests WHERE collection_id = ?", colID).Scan(&maxPos)
	nextPos := int64(0)
	if maxPos.Valid {
		nextPos = maxPos.Int64 + 1
	}

	// Insert request
	paramsJSON, _ := json.Marshal(req.Request.Parameters)
	headersJSON, _ := json.Marshal(req.Request.Headers)
	bodyType := req.Request.BodyType
	if bodyType == "" {
		bodyType = model.BodyTypeNone
	}
	_, err = tx.Exec(`
		INSERT INTO saved_requests (
			collection_id, name, method, base_url, path, auth_token,
			parameters, headers, body_type, body_content, position
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		colID, req.Name, req.Request.WireMethod(), req.Request.BaseURL, req.Request.Path,
		req.Request.AuthToken, string(paramsJSON), string(headersJSON),
		string(bodyType), req.Request.BodyContent, nextPos)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// =============================================================================
// Alias Operations
// =============================================================================

// LoadAliases loads all aliases from the database
func (s *SQLiteStorage) LoadAliases() (*model.Aliases, error) {
	aliases := &model.Aliases{Aliases: make(map[string]string)}

	rows, err := s.db.Query("SELECT name, url FROM aliases")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name, url string
		if err := rows.Scan(&name, &url); err != nil {
			return nil, err
		}
		aliases.Aliases[name] = url
	}

	return aliases, rows.Err()
}

// CreateAlias creates a new alias
func (s *SQLiteStorage) CreateAlias(name, url string) error {
	_, err := s.db.Exec(`
		INSERT INTO aliases (name, url) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET url = excluded.url`,
		name, url)
	return err
}

// DeleteAlias deletes an alias
func (s *SQLiteStorage) DeleteAlias(name string) error {
	_, err := s.db.Exec("DELETE FROM aliases WHERE name = ?", name)
	return err
}

// GetAlias gets an alias URL by name
func (s *SQLiteStorage) GetAlias(name string) (string, bool, error) {
	var url string
	err := s.db.QueryRow("SELECT url FROM aliases WHERE name = ?", name).Scan(&url)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return url, true, nil
}
