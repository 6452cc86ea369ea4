// Package store persists loaded sessions under the data directory: one
// metadata.json plus CSV dumps of the displayed particle positions and the
// bond list, and lists past sessions for the CLI.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/cgview/internal/pbc"
	"github.com/san-kum/cgview/internal/structure"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type SessionMetadata struct {
	ID            string          `json:"id"`
	Topology      string          `json:"topology"`
	Configuration string          `json:"configuration"`
	Timestamp     time.Time       `json:"timestamp"`
	Timestep      int             `json:"timestep"`
	Box           pbc.Box         `json:"box"`
	Energy        snapshotEnergy  `json:"energy"`
	NumParticles  int             `json:"num_particles"`
	NumBonds      int             `json:"num_bonds"`
	NumStrands    int             `json:"num_strands"`
}

type snapshotEnergy struct {
	Total     float64 `json:"total"`
	Potential float64 `json:"potential"`
	Kinetic   float64 `json:"kinetic"`
}

// Save writes a session directory for the graph and its current wrapped
// view and returns the session ID.
func (s *Store) Save(topPath, confPath string, g *structure.Graph, m *pbc.Model) (string, error) {
	id := fmt.Sprintf("session_%d", time.Now().Unix())
	dir := filepath.Join(s.baseDir, id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := SessionMetadata{
		ID:            id,
		Topology:      topPath,
		Configuration: confPath,
		Timestamp:     time.Now(),
		Timestep:      g.Meta.Timestep,
		Box:           g.Meta.Box,
		Energy: snapshotEnergy{
			Total:     g.Meta.Energy.Total,
			Potential: g.Meta.Energy.Potential,
			Kinetic:   g.Meta.Energy.Kinetic,
		},
		NumParticles: len(g.Particles),
		NumBonds:     len(g.Bonds),
		NumStrands:   g.Meta.NumStrands,
	}

	metaFile, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.writeParticles(filepath.Join(dir, "particles.csv"), g, m); err != nil {
		return "", err
	}
	if err := s.writeBonds(filepath.Join(dir, "bonds.csv"), g); err != nil {
		return "", err
	}

	return id, nil
}

func (s *Store) writeParticles(path string, g *structure.Graph, m *pbc.Model) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"index", "type", "strand", "x", "y", "z", "vx", "vy", "vz"}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, p := range g.Particles {
		pos := m.Position(i)
		row := []string{
			strconv.Itoa(p.Index),
			strconv.Itoa(p.Type),
			strconv.Itoa(p.Strand),
			ff(pos.X), ff(pos.Y), ff(pos.Z),
			ff(p.Velocity.X), ff(p.Velocity.Y), ff(p.Velocity.Z),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) writeBonds(path string, g *structure.Graph) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"from", "to", "spring", "stiffness", "rest_length"}); err != nil {
		return err
	}
	for _, b := range g.Bonds {
		row := []string{strconv.Itoa(b.From), strconv.Itoa(b.To), "", "", ""}
		if b.Spring != nil {
			row[2] = strconv.Itoa(b.Spring.ID)
			row[3] = ff(b.Spring.Stiffness)
			row[4] = ff(b.Spring.RestLength)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func ff(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// List returns the metadata of all stored sessions. A missing data dir is
// an empty list, not an error.
func (s *Store) List() ([]SessionMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SessionMetadata{}, nil
		}
		return nil, err
	}

	sessions := make([]SessionMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta SessionMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		sessions = append(sessions, meta)
	}
	return sessions, nil
}

// Load reads one session's metadata by ID.
func (s *Store) Load(id string) (*SessionMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta SessionMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}
