// Package datarecording persists what happened during a run. Tables are
// derived from flat record structs through reflection, rows are buffered
// and written in batched transactions, and everything left in the buffers
// is flushed at process exit.
package datarecording

import (
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/fatih/structs"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// A DataRecorder is a backend that records and stores run data.
type DataRecorder interface {
	// CreateTable creates a table whose columns are the fields of
	// sampleEntry. The sample must be a flat struct of scalar fields.
	CreateTable(tableName string, sampleEntry any)

	// InsertData buffers one entry for a table that already exists.
	InsertData(tableName string, entry any)

	// ListTables returns the names of all created tables.
	ListTables() []string

	// Flush writes all buffered entries into the database.
	Flush()

	// Close flushes and releases the database.
	Close() error
}

// New creates a DataRecorder backed by a SQLite database at path (the
// ".sqlite3" suffix is appended). An empty path picks a unique name in the
// working directory. Refuses to overwrite an existing file.
func New(path string) DataRecorder {
	w := &sqliteWriter{
		dbPath:    path,
		batchSize: 4096,
		tables:    make(map[string]*table),
	}

	w.init()

	atexit.Register(func() { w.Flush() })

	return w
}

type table struct {
	structType reflect.Type
	entries    []any
}

// sqliteWriter writes records into a SQLite database.
type sqliteWriter struct {
	db *sql.DB

	dbPath     string
	tables     map[string]*table
	batchSize  int
	entryCount int
}

func (w *sqliteWriter) init() {
	if w.dbPath == "" {
		w.dbPath = "ctb_turn_log_" + xid.New().String()
	}

	filename := w.dbPath + ".sqlite3"

	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	fmt.Fprintf(os.Stderr, "Database created for recording: %s\n", filename)

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	w.db = db
}

func isScalarKind(kind reflect.Kind) bool {
	switch kind {
	case
		reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}

func mustBeFlatStruct(entry any) {
	t := reflect.TypeOf(entry)
	if t.Kind() != reflect.Struct {
		panic(fmt.Errorf("record must be a struct, got %s", t.Kind()))
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !isScalarKind(field.Type.Kind()) {
			panic(fmt.Errorf(
				"record field %s has unsupported kind %s",
				field.Name, field.Type.Kind()))
		}
	}
}

func (w *sqliteWriter) CreateTable(tableName string, sampleEntry any) {
	mustBeFlatStruct(sampleEntry)

	if _, exists := w.tables[tableName]; exists {
		panic(fmt.Sprintf("table %s already exists", tableName))
	}

	fields := strings.Join(structs.Names(sampleEntry), ", \n\t")
	w.mustExecute(`CREATE TABLE ` + tableName +
		` (` + "\n\t" + fields + "\n" + `);`)

	w.tables[tableName] = &table{
		structType: reflect.TypeOf(sampleEntry),
	}
}

func (w *sqliteWriter) InsertData(tableName string, entry any) {
	t, exists := w.tables[tableName]
	if !exists {
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	if reflect.TypeOf(entry) != t.structType {
		panic(fmt.Sprintf("entry type %T does not match table %s",
			entry, tableName))
	}

	t.entries = append(t.entries, entry)

	w.entryCount++
	if w.entryCount >= w.batchSize {
		w.Flush()
	}
}

func (w *sqliteWriter) ListTables() []string {
	tables := make([]string, 0, len(w.tables))
	for name := range w.tables {
		tables = append(tables, name)
	}

	return tables
}

func (w *sqliteWriter) Flush() {
	if w.entryCount == 0 {
		return
	}

	w.mustExecute("BEGIN TRANSACTION")
	defer w.mustExecute("COMMIT TRANSACTION")

	for tableName, t := range w.tables {
		if len(t.entries) == 0 {
			continue
		}

		stmt := w.prepareInsert(tableName, t.entries[0])

		for _, entry := range t.entries {
			v := reflect.ValueOf(entry)

			args := make([]any, 0, v.NumField())
			for i := 0; i < v.NumField(); i++ {
				args = append(args, v.Field(i).Interface())
			}

			if _, err := stmt.Exec(args...); err != nil {
				panic(err)
			}
		}

		t.entries = nil
		stmt.Close()
	}

	w.entryCount = 0
}

func (w *sqliteWriter) Close() error {
	w.Flush()
	return w.db.Close()
}

func (w *sqliteWriter) mustExecute(query string) sql.Result {
	res, err := w.db.Exec(query)
	if err != nil {
		panic(fmt.Errorf("failed to execute %q: %w", query, err))
	}

	return res
}

func (w *sqliteWriter) prepareInsert(tableName string, sampleEntry any) *sql.Stmt {
	placeholders := make([]string, len(structs.Names(sampleEntry)))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	stmt, err := w.db.Prepare("INSERT INTO " + tableName +
		" VALUES (" + strings.Join(placeholders, ", ") + ")")
	if err != nil {
		panic(err)
	}

	return stmt
}
