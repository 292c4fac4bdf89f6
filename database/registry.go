package database

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/tevino/abool"

	"github.com/rowbase/rowbase/database/storage"
	"github.com/rowbase/rowbase/log"
)

const registryFileName = "databases.json"

var (
	rootDir string

	initialized    = abool.NewBool(false)
	shuttingDown   = abool.NewBool(false)
	shutdownSignal = make(chan struct{})

	registry     = make(map[string]*Database)
	registryLock sync.Mutex

	controllers     = make(map[string]*Controller)
	controllersLock sync.Mutex

	nameConstraint = regexp.MustCompile("^[A-Za-z0-9_-]{3,}$")
)

// Initialize initializes the database system with the given data location.
func Initialize(location string) error {
	if !initialized.SetToIf(false, true) {
		return ErrInitialized
	}

	rootDir = location
	err := os.MkdirAll(rootDir, 0o700)
	if err != nil {
		return fmt.Errorf("could not create database directory (%s): %w", rootDir, err)
	}

	err = loadRegistry()
	if err != nil {
		return fmt.Errorf("could not load database registry (%s): %w", filepath.Join(rootDir, registryFileName), err)
	}

	return nil
}

// Register registers a new database. If the database is already registered,
// only its description is updated and the effective registration is
// returned.
func Register(db *Database) (*Database, error) {
	if !initialized.IsSet() {
		return nil, ErrNotInitialized
	}

	registryLock.Lock()
	defer registryLock.Unlock()

	registeredDB, ok := registry[db.Name]
	if ok {
		if registeredDB.Description != db.Description {
			registeredDB.Description = db.Description
			registeredDB.Updated()
			if err := saveRegistry(); err != nil {
				return nil, err
			}
		}
		return registeredDB, nil
	}

	if !nameConstraint.MatchString(db.Name) {
		return nil, ErrInvalidName
	}

	now := time.Now().Round(time.Second)
	db.Registered = now
	db.LastUpdated = now
	db.LastLoaded = time.Time{}
	registry[db.Name] = db

	if err := saveRegistry(); err != nil {
		return nil, err
	}
	return db, nil
}

func getDatabase(name string) (*Database, error) {
	registryLock.Lock()
	defer registryLock.Unlock()

	registeredDB, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	registeredDB.Loaded()

	return registeredDB, nil
}

func getController(name string) (*Controller, error) {
	if !initialized.IsSet() {
		return nil, ErrNotInitialized
	}

	controllersLock.Lock()
	defer controllersLock.Unlock()

	controller, ok := controllers[name]
	if ok {
		return controller, nil
	}

	registeredDB, err := getDatabase(name)
	if err != nil {
		return nil, err
	}

	location := filepath.Join(rootDir, name, registeredDB.StorageType)
	err = os.MkdirAll(location, 0o700)
	if err != nil {
		return nil, fmt.Errorf("could not create storage directory (%s): %w", location, err)
	}

	storageInt, err := storage.CreateStorage(name, registeredDB.StorageType, location)
	if err != nil {
		return nil, fmt.Errorf("could not start database %s (type %s): %w", name, registeredDB.StorageType, err)
	}

	controller = newController(registeredDB, storageInt)
	controllers[name] = controller

	log.Infof("database: started database %s (type %s)", name, registeredDB.StorageType)
	return controller, nil
}

// InjectDatabase injects an already running storage into the database
// system, without a storage location of its own.
func InjectDatabase(name string, storageInt storage.Interface) error {
	if !initialized.IsSet() {
		return ErrNotInitialized
	}

	controllersLock.Lock()
	defer controllersLock.Unlock()

	if _, ok := controllers[name]; ok {
		return ErrLoaded
	}

	registryLock.Lock()
	defer registryLock.Unlock()

	registeredDB, ok := registry[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	if registeredDB.StorageType != "injected" {
		return fmt.Errorf("database %s is not of type injected", name)
	}

	controllers[name] = newController(registeredDB, storageInt)
	return nil
}

func loadRegistry() error {
	data, err := os.ReadFile(filepath.Join(rootDir, registryFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	loaded := make(map[string]*Database)
	err = json.Unmarshal(data, &loaded)
	if err != nil {
		return err
	}

	registryLock.Lock()
	defer registryLock.Unlock()
	registry = loaded
	return nil
}

// saveRegistry must be called with the registryLock held.
func saveRegistry() error {
	data, err := json.MarshalIndent(registry, "", "  ")
	if err != nil {
		return err
	}

	filePath := filepath.Join(rootDir, registryFileName)
	err = os.WriteFile(filePath+".tmp", data, 0o600)
	if err != nil {
		return err
	}
	return os.Rename(filePath+".tmp", filePath)
}

// Shutdown shuts down the whole database system.
func Shutdown() error {
	if !shuttingDown.SetToIf(false, true) {
		return nil
	}
	close(shutdownSignal)

	controllersLock.Lock()
	defer controllersLock.Unlock()

	var merr *multierror.Error
	for name, c := range controllers {
		if err := c.Shutdown(); err != nil {
			log.Errorf("database: failed to shut down %s: %s", name, err)
			merr = multierror.Append(merr, err)
		}
	}
	return merr.ErrorOrNil()
}
