package main

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/matsen/dblp2wd/internal/config"
	"github.com/matsen/dblp2wd/internal/dblp"
	"github.com/matsen/dblp2wd/internal/export"
	"github.com/matsen/dblp2wd/internal/mapping"
	"github.com/matsen/dblp2wd/internal/pipeline"
	"github.com/matsen/dblp2wd/internal/session"
	"github.com/matsen/dblp2wd/internal/table"
)

// subjectIRI accepts a full dblp person IRI or a bare pid ("134/6661",
// "pid/134/6661") and returns the IRI.
func subjectIRI(arg string) string {
	arg = strings.TrimSpace(arg)
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		return arg
	}
	arg = strings.TrimPrefix(arg, "pid/")
	return pipeline.DBLPPersonPrefix + strings.Trim(arg, "/")
}

// newService builds a pipeline service on a client configured from globalCfg.
func newService() *pipeline.Service {
	opts := append(globalCfg.ClientOptions(), dblp.WithLogger(logger))
	client := dblp.NewClient(opts...)
	return pipeline.New(client, pipeline.WithLogger(logger))
}

// findWorkspace returns the workspace root, or "" when running stateless.
func findWorkspace() string {
	cwd, err := os.Getwd()
	if err != nil {
		os.Exit(outputError(ExitError, "getting current directory: %v", err))
	}
	root, err := config.FindWorkspace(cwd)
	if errors.Is(err, config.ErrNoWorkspace) {
		return ""
	}
	if err != nil {
		exitWithError(ExitConfigError, "finding workspace: %v", err)
	}
	return root
}

// mustOpenSession opens the session store of the enclosing workspace.
// Returns nil when there is no workspace. The caller closes a non-nil store.
func mustOpenSession() *session.Store {
	root := findWorkspace()
	if root == "" {
		return nil
	}
	store, err := session.Open(config.SessionPath(root))
	if err != nil {
		exitWithError(ExitConfigError, "opening session: %v", err)
	}
	return store
}

// mustRequireSession is mustOpenSession for commands that need a workspace.
func mustRequireSession() *session.Store {
	store := mustOpenSession()
	if store == nil {
		exitWithError(ExitConfigError, "%v\n\nRun 'dblp2wd init' to create one.", config.ErrNoWorkspace)
	}
	return store
}

// mustSelectSubject records subject as current; a change drops cached tables.
func mustSelectSubject(store *session.Store, subject string) {
	if store == nil {
		return
	}
	changed, err := store.SelectSubject(subject)
	if err != nil {
		exitWithError(ExitError, "selecting subject: %v", err)
	}
	if changed {
		logger.Info("selected subject", "subject", subject)
	}
}

// cacheKey names a cached table. Tables derived with a mapping file are keyed
// by the file's path and a hash of its contents, so editing or swapping the
// mapping never serves a stale join.
func cacheKey(op, mappingPath string) string {
	if mappingPath == "" {
		return op
	}
	key := mappingPath
	if abs, err := filepath.Abs(mappingPath); err == nil {
		key = abs
	}
	data, err := os.ReadFile(mappingPath)
	if err != nil {
		// mustLoadMapping has already failed on an unreadable file.
		return op + "@" + key
	}
	sum := sha256.Sum256(data)
	return op + "@" + key + "#" + hex.EncodeToString(sum[:8])
}

// loadTable returns the cached table for (key, subject) unless --refresh is
// set or there is none, in which case it calls compute and caches the result.
func loadTable(store *session.Store, key, subject string, compute func() (*table.Table, error)) (*table.Table, error) {
	if store != nil && !refresh {
		t, err := store.CachedTable(key, subject)
		if err != nil {
			logger.Warn("ignoring unreadable cache entry", "op", key, "error", err)
		} else if t != nil {
			logger.Debug("serving cached table", "op", key, "subject", subject, "rows", t.Len())
			return t, nil
		}
	}

	t, err := compute()
	if err != nil {
		return nil, err
	}
	if store != nil {
		if err := store.PutTable(key, subject, t); err != nil {
			logger.Warn("caching table failed", "op", key, "error", err)
		}
	}
	return t, nil
}

// mustLoadMapping reads a curated mapping file. An empty path means none.
func mustLoadMapping(path string, spec mapping.Spec) *mapping.Map {
	if path == "" {
		return nil
	}
	m, err := mapping.Load(path, spec)
	if err != nil {
		exitWithError(ExitDataError, "loading mapping: %v", err)
	}
	if m.Skipped() > 0 {
		logger.Warn("mapping rows without wd_id skipped", "file", path, "skipped", m.Skipped())
	}
	logger.Info("loaded mapping", "file", path, "entries", m.Len())
	return m
}

// outputDir resolves --dir: the flag if set, else <workspace>/out, else ".".
func outputDir(flag string) string {
	if flag != "" {
		return flag
	}
	if root := findWorkspace(); root != "" {
		return config.OutputPath(root)
	}
	return "."
}

// mustWriteArtifact writes t to path and records the export in the session.
func mustWriteArtifact(store *session.Store, op, subject, path string, t *table.Table) WrittenFile {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			exitWithError(ExitError, "creating %s: %v", dir, err)
		}
	}
	if err := export.WriteFile(path, t); err != nil {
		if errors.Is(err, export.ErrUnknownFormat) {
			exitWithError(ExitError, "%v (use .csv, .tsv, .json, or .xlsx)", err)
		}
		exitWithError(ExitError, "writing %s: %v", op, err)
	}

	written := WrittenFile{Operation: op, Path: path, Rows: t.Len()}
	if store != nil {
		e, err := store.RecordExport(op, subject, path, t.Len())
		if err != nil {
			logger.Warn("recording export failed", "path", path, "error", err)
		} else {
			written.RunID = e.RunID
		}
	}
	logger.Info("wrote artifact", "op", op, "path", path, "rows", t.Len())
	return written
}

// emitTable either prints t or, when out is set, writes it to out.
func emitTable(store *session.Store, op, subject, out string, t *table.Table) {
	if out == "" {
		printTable(t)
		return
	}
	written := mustWriteArtifact(store, op, subject, out, t)
	printExport(ExportResponse{Subject: subject, Files: []WrittenFile{written}})
}
