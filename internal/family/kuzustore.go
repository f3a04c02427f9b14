//go:build cgo

package family

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	kuzu "github.com/kuzudb/go-kuzu"
)

// KuzuStore implements the Store interface using KuzuDB as the graph backend.
// It requires CGO because the go-kuzu driver wraps KuzuDB's C library.
//
// List-valued fields are kept as JSON strings on the Person node; the
// reconciled relationships are also materialized as PARENT_OF and SPOUSE_OF
// edges so the index can be explored with Cypher directly.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

// Compile-time checks that KuzuStore satisfies Store and EdgeWriter.
var (
	_ Store      = (*KuzuStore)(nil)
	_ EdgeWriter = (*KuzuStore)(nil)
)

// NewKuzuStore creates a KuzuStore backed by an in-memory KuzuDB instance.
func NewKuzuStore() (*KuzuStore, error) {
	return openKuzu(":memory:")
}

// NewKuzuFileStore creates a KuzuStore backed by a file-based KuzuDB at the
// given directory path. KuzuDB creates the leaf directory itself.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	return openKuzu(dbPath)
}

func openKuzu(path string) (*KuzuStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ---------- Schema setup ----------

// ddlStatements defines the Cypher DDL executed by InitSchema.
// Node tables must precede relationship tables.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS Person(
		id STRING,
		name STRING,
		father_id STRING,
		mother_id STRING,
		spouse_ids STRING,
		child_ids STRING,
		collections STRING,
		surname STRING,
		maiden STRING,
		alternates STRING,
		sex STRING,
		birth_year INT64,
		death_year INT64,
		PRIMARY KEY(id)
	)`,
	`CREATE REL TABLE IF NOT EXISTS PARENT_OF(FROM Person TO Person)`,
	`CREATE REL TABLE IF NOT EXISTS SPOUSE_OF(FROM Person TO Person)`,
}

// InitSchema creates all node and relationship tables if they do not exist.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// ---------- Write operations ----------

// AddPerson inserts or replaces a Person node.
func (s *KuzuStore) AddPerson(_ context.Context, p Person) error {
	spouses, err := encodeList(p.SpouseIDs)
	if err != nil {
		return err
	}
	children, err := encodeList(p.ChildIDs)
	if err != nil {
		return err
	}
	collections, err := encodeList(p.Collections)
	if err != nil {
		return err
	}
	alternates, err := encodeList(p.Surnames.Alternates)
	if err != nil {
		return err
	}
	return s.exec(
		`MERGE (p:Person {id: $id})
		 SET p.name = $name,
			p.father_id = $father,
			p.mother_id = $mother,
			p.spouse_ids = $spouses,
			p.child_ids = $children,
			p.collections = $collections,
			p.surname = $surname,
			p.maiden = $maiden,
			p.alternates = $alternates,
			p.sex = $sex,
			p.birth_year = $born,
			p.death_year = $died`,
		map[string]any{
			"id":          p.ID,
			"name":        p.Name,
			"father":      p.FatherID,
			"mother":      p.MotherID,
			"spouses":     spouses,
			"children":    children,
			"collections": collections,
			"surname":     p.Surnames.Primary,
			"maiden":      p.Surnames.Maiden,
			"alternates":  alternates,
			"sex":         string(p.Sex),
			"born":        int64(p.BirthYear),
			"died":        int64(p.DeathYear),
		},
	)
}

// AddEdge inserts a relationship edge between two existing Person nodes.
func (s *KuzuStore) AddEdge(_ context.Context, edge Edge) error {
	var cypher string
	switch edge.Relation {
	case RelationParent:
		cypher = `MATCH (a:Person {id: $src}), (b:Person {id: $dst})
				CREATE (a)-[:PARENT_OF]->(b)`
	case RelationSpouse:
		cypher = `MATCH (a:Person {id: $src}), (b:Person {id: $dst})
				CREATE (a)-[:SPOUSE_OF]->(b)`
	default:
		return fmt.Errorf("kuzu: unsupported relation: %s", edge.Relation)
	}
	return s.exec(cypher, map[string]any{
		"src": edge.SourceID,
		"dst": edge.TargetID,
	})
}

// ---------- Read operations ----------

// personColumns is the RETURN clause shared by every Person read.
const personColumns = `p.id, p.name, p.father_id, p.mother_id, p.spouse_ids,
	p.child_ids, p.collections, p.surname, p.maiden, p.alternates, p.sex,
	p.birth_year, p.death_year`

// GetPerson retrieves a single Person node by id, or returns nil if not found.
func (s *KuzuStore) GetPerson(_ context.Context, id string) (*Person, error) {
	rows, err := s.query(
		"MATCH (p:Person {id: $id}) RETURN "+personColumns,
		map[string]any{"id": id},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rowToPerson(rows[0])
}

// ListPersons returns every Person node ordered by id.
func (s *KuzuStore) ListPersons(_ context.Context) ([]Person, error) {
	rows, err := s.query("MATCH (p:Person) RETURN "+personColumns+" ORDER BY p.id", nil)
	if err != nil {
		return nil, err
	}
	out := make([]Person, 0, len(rows))
	for _, r := range rows {
		p, err := rowToPerson(r)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

// ---------- Stats ----------

// Stats returns counts of people and relationship edges.
func (s *KuzuStore) Stats(_ context.Context) (*GraphStats, error) {
	people, err := s.count("MATCH (p:Person) RETURN count(p)")
	if err != nil {
		return nil, err
	}
	parents, err := s.count("MATCH ()-[r:PARENT_OF]->() RETURN count(r)")
	if err != nil {
		return nil, err
	}
	spouses, err := s.count("MATCH ()-[r:SPOUSE_OF]->() RETURN count(r)")
	if err != nil {
		return nil, err
	}

	rows, err := s.query("MATCH (p:Person) RETURN p.collections", nil)
	if err != nil {
		return nil, err
	}
	tags := make(map[string]bool)
	for _, r := range rows {
		list, err := decodeList(toString(r[0]))
		if err != nil {
			return nil, err
		}
		for _, t := range list {
			tags[t] = true
		}
	}

	return &GraphStats{
		PersonCount: people,
		ParentEdges: parents,
		SpouseEdges: spouses,
		Collections: len(tags),
	}, nil
}

// ---------- Internal helpers ----------

// exec runs a parameterized Cypher statement that produces no result rows.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", err)
	}
	res.Close()
	return nil
}

// query runs a parameterized Cypher statement and collects all result rows.
// Each row is a []any slice with values in column order.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

// count runs a single-value count query.
func (s *KuzuStore) count(cypher string) (int, error) {
	rows, err := s.query(cypher, nil)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	return toInt(rows[0][0]), nil
}

// rowToPerson converts a result row in personColumns order into a Person.
func rowToPerson(r []any) (*Person, error) {
	spouses, err := decodeList(toString(r[4]))
	if err != nil {
		return nil, err
	}
	children, err := decodeList(toString(r[5]))
	if err != nil {
		return nil, err
	}
	collections, err := decodeList(toString(r[6]))
	if err != nil {
		return nil, err
	}
	alternates, err := decodeList(toString(r[9]))
	if err != nil {
		return nil, err
	}
	return &Person{
		ID:          toString(r[0]),
		Name:        toString(r[1]),
		FatherID:    toString(r[2]),
		MotherID:    toString(r[3]),
		SpouseIDs:   spouses,
		ChildIDs:    children,
		Collections: collections,
		Surnames: Surnames{
			Primary:    toString(r[7]),
			Maiden:     toString(r[8]),
			Alternates: alternates,
		},
		Sex:       Sex(toString(r[10])),
		BirthYear: toInt(r[11]),
		DeathYear: toInt(r[12]),
	}, nil
}

func encodeList(list []string) (string, error) {
	if len(list) == 0 {
		return "", nil
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("kuzu: encode list: %w", err)
	}
	return string(b), nil
}

func decodeList(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("kuzu: decode list: %w", err)
	}
	return out, nil
}

// ---------- Type coercion helpers ----------
// KuzuDB returns typed Go values (int64, string); NULL comes back as nil.

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
