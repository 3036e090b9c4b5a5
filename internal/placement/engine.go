package placement

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"bl2bids/internal/common"
	"bl2bids/internal/datatype"
	"bl2bids/internal/install"
	"bl2bids/internal/layout"
	"bl2bids/internal/manifest"
	"bl2bids/internal/nifti"
	"bl2bids/internal/phase"
	"bl2bids/internal/sidecar"
	"bl2bids/utils"
)

const (
	dirPerm = 0o755
	// trTolerance is the largest sidecar/header RepetitionTime difference, in
	// seconds, not reported as a mismatch.
	trTolerance = 1e-3
)

var errNoImage = errors.New("no image to read the orientation from")

// Installer places one source file or directory at a destination path.
type Installer interface {
	Install(src, dest string) (install.Outcome, error)
}

// ImageInspector reads what placement needs from an image header.
type ImageInspector interface {
	AxisCodes(path string) (nifti.AxisCodes, error)
	RepetitionTime(path string) (float64, error)
}

// Engine places manifests into a BIDS tree.
type Engine struct {
	cfg       Config
	registry  *datatype.Registry
	builder   *layout.Builder
	installer Installer
	inspector ImageInspector
}

// NewEngine creates an Engine. Nil dependencies are replaced by the default
// registry, an install.Installer using cfg.Mode and a nifti.Inspector.
func NewEngine(cfg Config, registry *datatype.Registry, installer Installer, inspector ImageInspector) *Engine {
	if registry == nil {
		registry = datatype.Default()
	}

	if installer == nil {
		installer = install.Installer{Mode: cfg.Mode}
	}

	if inspector == nil {
		inspector = nifti.Inspector{}
	}

	return &Engine{
		cfg:       cfg,
		registry:  registry,
		builder:   layout.NewBuilder(cfg.OutputRoot, registry),
		installer: installer,
		inspector: inspector,
	}
}

// Run places every input of m, patches the fieldmap sidecars and writes the
// dataset description. Per-record problems are collected in the report; the
// returned error is reserved for failures that leave no usable dataset.
func (e *Engine) Run(m *manifest.Manifest) (*Report, error) {
	if m == nil {
		return nil, manifest.ErrNoInputs
	}

	records, diags := manifest.Resolve(m)

	report := &Report{
		IntendedFor: []string{},
		Diagnostics: diags,
	}

	for _, rec := range records {
		e.place(rec, report)
	}

	for i := range report.Fieldmaps {
		e.patchFieldmap(&report.Fieldmaps[i], report)
	}

	path, err := e.WriteDatasetDescription()
	if err != nil {
		return report, err
	}

	report.DatasetDescription = path

	log.WithFields(log.Fields{
		"records":  len(records),
		"errors":   len(report.Diagnostics.Errors),
		"warnings": len(report.Diagnostics.Warnings),
		"codes":    report.Diagnostics.Codes(),
	}).Info("bids structure generated")

	return report, nil
}

func (e *Engine) place(rec manifest.Resolved, report *Report) {
	label := rec.Label()
	dt := e.registry.Lookup(rec.Record.Datatype)

	dest, diags, err := e.builder.Build(rec)
	report.Diagnostics.Merge(diags)

	if err != nil {
		report.Diagnostics.AddError(CodeMissingSubject, err.Error(), label, "")
		return
	}

	if err := os.MkdirAll(dest.Dir, dirPerm); err != nil {
		report.Diagnostics.AddError(CodeMkdir, fmt.Sprintf("failed to create directory: %v", err), label, dest.Dir)
		return
	}

	log.WithFields(log.Fields{
		"record":   label,
		"datatype": dt.Label(),
		"dir":      dest.Dir,
		"name":     dest.Full.String(),
	}).Info("placing input")

	p := Placement{Record: label, Datatype: dt.Label(), Destination: dest}

	if dt.IsDerivative() {
		e.placeDerivative(rec, dest, &p, report)
		report.Placements = append(report.Placements, p)

		return
	}

	for _, rule := range dt.Files {
		if rule.JSON {
			continue
		}

		if src, ok := sourceFor(rec, dt, rule); ok {
			e.install(src, dest.File(rule.Suffix, rule.Shared), label, &p, report)
		}
	}

	if dt.Suffix != "" {
		path := dest.File(dt.Suffix+".json", false)
		doc := sidecar.FromMeta(rec.Record.Meta)

		if dt.Geometry {
			image := imageFor(rec, dt, dest)
			e.correctPhaseEncoding(doc, image, label, path, report)

			if e.cfg.CheckRepetitionTime {
				e.checkRepetitionTime(doc, image, label, report)
			}
		}

		e.writeSidecar(path, doc, label, report)
		p.Sidecar = path
	}

	if dt.IntendedFor {
		image := dest.RelativeToSubject(dest.File(dt.ImageName(), false))
		report.IntendedFor = append(report.IntendedFor, image)
	}

	if dt.Modality == datatype.ModalityFmap {
		report.Fieldmaps = append(report.Fieldmaps, FieldmapContext{
			Record:      rec,
			Datatype:    dt,
			Destination: dest,
		})
	}

	report.Placements = append(report.Placements, p)
}

// placeDerivative installs every resolved path under its own base name and
// writes the metadata as "<stem>_<input id>.json".
func (e *Engine) placeDerivative(rec manifest.Resolved, dest layout.Destination, p *Placement, report *Report) {
	label := rec.Label()

	for _, src := range rec.OrderedPaths() {
		e.install(src, dest.File(filepath.Base(src), false), label, p, report)
	}

	name := rec.Record.ID
	if name == "" {
		name = rec.Record.Datatype
	}

	path := dest.File(name+".json", false)
	e.writeSidecar(path, sidecar.FromMeta(rec.Record.Meta), label, report)
	p.Sidecar = path
}

// sourceFor picks the resolved path a rule applies to. Electrophysiology
// inputs fall back to the rule's canonical file in the staged input directory.
func sourceFor(rec manifest.Resolved, dt datatype.Datatype, rule datatype.FileRule) (string, bool) {
	for _, src := range rec.OrderedPaths() {
		if rule.Matches(src) {
			return src, true
		}
	}

	dir := rec.Record.InputDir()
	if dt.Modality.IsElectrophysiology() && dir != "" && rule.Canonical() != "" {
		return filepath.Join(dir, rule.Canonical()), true
	}

	return "", false
}

// imageFor returns the image whose orientation applies to the record's
// sidecar: the installed one, else the first NIfTI source.
func imageFor(rec manifest.Resolved, dt datatype.Datatype, dest layout.Destination) string {
	installed := dest.File(dt.ImageName(), false)
	if _, err := os.Stat(installed); err == nil {
		return installed
	}

	for _, src := range rec.OrderedPaths() {
		if common.IsNifti(src) {
			return src
		}
	}

	return ""
}

func (e *Engine) install(src, dest, label string, p *Placement, report *Report) {
	outcome, err := e.installer.Install(src, dest)

	switch {
	case err != nil:
		report.Diagnostics.AddError(CodeInstall, err.Error(), label, dest)
	case outcome == install.SkippedMissing:
		report.Diagnostics.AddInfo(CodeSourceMissing, "source not found, skipping", label, src)
	default:
		p.Files = append(p.Files, dest)
	}
}

func (e *Engine) correctPhaseEncoding(doc sidecar.Document, image, label, path string, report *Report) {
	pe, ok := doc.PhaseEncoding()
	if !ok {
		return
	}

	var (
		codes nifti.AxisCodes
		err   error
	)

	if !phase.IsVoxelAxis(pe) {
		if image == "" {
			err = errNoImage
		} else {
			codes, err = e.inspector.AxisCodes(image)
		}
	}

	if err == nil {
		err = doc.CorrectPhaseEncoding(codes)
	}

	if err != nil {
		report.Diagnostics.AddWarning(CodePhaseEncoding,
			fmt.Sprintf("can't correct PhaseEncodingDirection %q.. keeping it: %v", pe, err), label, path)
	}
}

func (e *Engine) checkRepetitionTime(doc sidecar.Document, image, label string, report *Report) {
	tr, ok := doc.RepetitionTime()
	if !ok || image == "" {
		return
	}

	header, err := e.inspector.RepetitionTime(image)
	if err != nil {
		log.WithFields(log.Fields{"image": image, "error": err}).Debug("can't read header TR")
		return
	}

	if !utils.NearlyEqual(tr, header, trTolerance) {
		report.Diagnostics.AddWarning(CodeRepetitionTimeMismatch,
			fmt.Sprintf("json file has TR=%g, header has TR=%g", tr, header), label, image)
	}
}

func (e *Engine) writeSidecar(path string, doc any, label string, report *Report) {
	if err := sidecar.Write(path, doc); err != nil {
		report.Diagnostics.AddError(CodeSidecar, err.Error(), label, path)
	}
}

// patchFieldmap copies the JSON sidecars of a fieldmap record into the tree
// with IntendedFor set to every DWI and BOLD image of the run and the phase
// encoding direction expressed in voxel axes.
func (e *Engine) patchFieldmap(fm *FieldmapContext, report *Report) {
	rec := fm.Record
	label := rec.Label()

	for _, key := range rec.Record.Keys {
		src, ok := rec.Path(key)
		if !ok {
			continue
		}

		rule, ok := jsonRule(fm.Datatype, src)
		if !ok {
			continue
		}

		dest := fm.Destination.File(rule.Suffix, rule.Shared)

		doc, err := sidecar.Read(src)
		if errors.Is(err, fs.ErrNotExist) {
			report.Diagnostics.AddInfo(CodeSourceMissing, "source not found, skipping", label, src)
			continue
		}

		if err != nil {
			report.Diagnostics.AddError(CodeSidecar, err.Error(), label, src)
			continue
		}

		doc.SetIntendedFor(report.IntendedFor)

		if image, imageKey := fieldmapImage(rec, key, src); exists(image) {
			if _, ok := doc.PhaseEncoding(); !ok {
				if pe, ok := fieldmapPhaseEncoding(rec.Record.Meta, imageKey); ok {
					doc[sidecar.KeyPhaseEncodingDirection] = pe
				}
			}

			e.correctPhaseEncoding(doc, image, label, dest, report)
		}

		log.WithFields(log.Fields{"src": src, "dest": dest}).Info("copying fieldmap sidecar")

		if err := sidecar.Write(dest, doc); err != nil {
			report.Diagnostics.AddError(CodeSidecar, err.Error(), label, dest)
			continue
		}

		fm.Sidecars = append(fm.Sidecars, dest)
	}
}

func jsonRule(dt datatype.Datatype, src string) (datatype.FileRule, bool) {
	for _, rule := range dt.Files {
		if rule.JSON && rule.Matches(src) {
			return rule, true
		}
	}

	return datatype.FileRule{}, false
}

// fieldmapImage returns the image a fieldmap sidecar describes and its key:
// the path bound to the sidecar's key without "_json", else the sidecar's
// path with ".nii.gz" in place of ".json".
func fieldmapImage(rec manifest.Resolved, key, src string) (string, string) {
	imageKey := strings.TrimSuffix(key, "_json")
	if imageKey != key {
		if p, ok := rec.Path(imageKey); ok {
			return p, imageKey
		}
	}

	return strings.TrimSuffix(src, ".json") + ".nii.gz", imageKey
}

// fieldmapPhaseEncoding looks the direction up in meta[imageKey], then in meta.
func fieldmapPhaseEncoding(meta map[string]any, imageKey string) (string, bool) {
	if nested, ok := meta[imageKey].(map[string]any); ok {
		if pe, ok := manifest.MetaString(nested, sidecar.KeyPhaseEncodingDirection); ok && pe != "" {
			return pe, true
		}
	}

	pe, ok := manifest.MetaString(meta, sidecar.KeyPhaseEncodingDirection)

	return pe, ok && pe != ""
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
