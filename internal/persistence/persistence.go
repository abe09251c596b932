package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/markusressel/heat2go/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketControllerState = "controllerState"
)

var ErrNotFound = errors.New("no persisted state found")

// ControllerState is the part of a regulator that survives a restart
type ControllerState struct {
	Kp       float64   `json:"kp" yaml:"kp"`
	Ki       float64   `json:"ki" yaml:"ki"`
	Kd       float64   `json:"kd" yaml:"kd"`
	SetPoint float64   `json:"setPoint" yaml:"setPoint"`
	SavedAt  time.Time `json:"savedAt" yaml:"savedAt"`
}

type Persistence interface {
	Init() error

	LoadControllerState(id string) (ControllerState, error)
	SaveControllerState(id string, state ControllerState) error
	DeleteControllerState(id string) error
	ListControllerStates() (map[string]ControllerState, error)
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// SaveControllerState stores the tunings and setpoint of the regulator with the given id
func (p persistence) SaveControllerState(id string, state ControllerState) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketControllerState))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return b.Put([]byte(id), data)
	})
}

// LoadControllerState loads the state of the regulator with the given id.
// ErrNotFound is returned if nothing was saved yet.
func (p persistence) LoadControllerState(id string) (ControllerState, error) {
	db, err := p.openPersistence()
	if err != nil {
		return ControllerState{}, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var state ControllerState
	corrupt := false
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketControllerState))
		if b == nil {
			return ErrNotFound
		}
		v := b.Get([]byte(id))
		if v == nil {
			return ErrNotFound
		}

		if err := json.Unmarshal(v, &state); err != nil {
			// if we cannot read the saved data, delete it
			ui.Warning("Unable to unmarshal saved controller state for %s: %v", id, err)
			if err := b.Delete([]byte(id)); err != nil {
				ui.Error("Unable to delete corrupt data key %s: %v", id, err)
			}
			corrupt = true
		}
		return nil
	})

	if err == nil && corrupt {
		return ControllerState{}, ErrNotFound
	}
	return state, err
}

func (p persistence) DeleteControllerState(id string) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketControllerState))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(id))
	})
}

// ListControllerStates returns every saved state by regulator id
func (p persistence) ListControllerStates() (map[string]ControllerState, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	result := map[string]ControllerState{}
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketControllerState))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var state ControllerState
			if err := json.Unmarshal(v, &state); err != nil {
				ui.Warning("Skipping unreadable controller state for %s: %v", string(k), err)
				return nil
			}
			result[string(k)] = state
			return nil
		})
	})

	return result, err
}
