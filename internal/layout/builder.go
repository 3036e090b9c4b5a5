package layout

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	log "github.com/sirupsen/logrus"

	"bl2bids/internal/datatype"
	"bl2bids/internal/diagnostic"
	"bl2bids/internal/entity"
	"bl2bids/internal/manifest"
)

// DefaultRoot is the root directory of the BIDS tree.
const DefaultRoot = "bids"

// ErrMissingSubject is returned for raw data records without a usable subject.
var ErrMissingSubject = errors.New("meta.subject is required")

// Builder computes destinations against a datatype registry.
type Builder struct {
	root     string
	registry *datatype.Registry
}

// NewBuilder creates a Builder rooted at root ("" means DefaultRoot).
func NewBuilder(root string, registry *datatype.Registry) *Builder {
	if root == "" {
		root = DefaultRoot
	}

	return &Builder{root: root, registry: registry}
}

// Root returns the root directory of the tree.
func (b *Builder) Root() string {
	return b.root
}

// Build computes the destination of rec. Recoverable problems, such as an
// unparseable run, are returned as diagnostics alongside the destination.
func (b *Builder) Build(rec manifest.Resolved) (Destination, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	dt := b.registry.Lookup(rec.Record.Datatype)
	meta := rec.Record.Meta
	seq := strconv.Itoa(rec.Index + 1)

	// lookup reports presence by key; the value may clean to "".
	lookup := func(key string) (string, bool) {
		v, ok := manifest.MetaString(meta, key)
		return entity.Clean(v), ok
	}

	clean := func(key string) string {
		v, _ := lookup(key)
		return v
	}

	subject := clean("subject")
	session := clean("session")

	if subject == "" && !dt.IsDerivative() {
		return Destination{}, diags, fmt.Errorf("%s: %w", rec.Label(), ErrMissingSubject)
	}

	var dest Destination

	if dt.IsDerivative() {
		dir := b.registry.DerivativeDirName(rec.Record.Datatype, rec.Record.ID)
		if rec.MultiInput {
			dir += "." + seq
		}

		dest.Dir = filepath.Join(b.root, "derivatives", dir)
	} else {
		dest.SubjectDir = filepath.Join(b.root, "sub-"+subject)

		dir := dest.SubjectDir
		if session != "" {
			dir = filepath.Join(dir, "ses-"+session)
		}

		dest.Dir = filepath.Join(dir, dt.Modality.String())
	}

	name := entity.Name{}.With(entity.Subject, subject).With(entity.Session, session)
	short := name

	task, hasTask := lookup("task")
	if !hasTask {
		task, hasTask = lookup("TaskName")
	}

	switch {
	case hasTask:
		name = name.With(entity.Task, task)
	case dt.Task == datatype.TaskRest:
		log.WithFields(log.Fields{"record": rec.Label()}).Debug("meta.task is not set.. defaulting to rest")
		name = name.With(entity.Task, "rest")
	case dt.Task == datatype.TaskIndexed:
		log.WithFields(log.Fields{"record": rec.Label()}).Debug("meta.task is not set.. defaulting to id" + seq)
		name = name.With(entity.Task, "id"+seq)
	}

	acq, hasAcquisition := lookup("acquisition")
	if !hasAcquisition {
		acq = clean("acq")
		short = short.With(entity.Acquisition, acq)
	}

	name = name.With(entity.Acquisition, acq)

	space := clean("space")
	name = name.With(entity.Space, space)
	short = short.With(entity.Space, space)

	run := ""
	if raw, ok := manifest.MetaString(meta, "run"); ok {
		if parsed, ok := entity.ParseRun(raw); ok {
			run = parsed
		} else {
			diags.AddWarning("run_unparseable", fmt.Sprintf("can't parse run %q.. ignoring", raw), rec.Label(), "")
		}
	}

	name = name.
		With(entity.Run, run).
		With(entity.Proc, clean("proc")).
		With(entity.Rec, clean("rec")).
		With(entity.Echo, clean("echo")).
		With(entity.Desc, dt.Desc)

	// Derivatives are told apart by their ".N" directory instead.
	if rec.MultiInput && run == "" && !dt.IsDerivative() {
		name = name.With(entity.Acquisition, acq+"id"+seq)
	}

	dest.Full = name
	dest.Short = short

	return dest, diags, nil
}
