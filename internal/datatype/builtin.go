package datatype

// Files shared by every electrophysiology datatype.
var (
	channelsFile    = FileRule{Match: []string{"channels.tsv"}, Suffix: "channels.tsv"}
	eventsFile      = FileRule{Match: []string{"events.tsv"}, Suffix: "events.tsv"}
	eventsJSONFile  = FileRule{Match: []string{"events.json"}, Suffix: "events.json"}
	coordsystemFile = FileRule{Match: []string{"coordsystem.json"}, Suffix: "coordsystem.json", Shared: true}
	headshapeFile   = FileRule{Match: []string{"headshape.pos"}, Suffix: "headshape.pos", Shared: true}
	electrodesFile  = FileRule{Match: []string{"electrodes.tsv"}, Suffix: "electrodes.tsv", Shared: true}
)

func megFiles(raw ...FileRule) []FileRule {
	return append(raw, headshapeFile, channelsFile, coordsystemFile, eventsFile, eventsJSONFile)
}

func eegFiles(raw ...FileRule) []FileRule {
	return append(raw, channelsFile, electrodesFile, coordsystemFile, eventsFile, eventsJSONFile)
}

func file(suffix string, match ...string) FileRule {
	return FileRule{Match: match, Suffix: suffix}
}

func fmapSidecar(name string) FileRule {
	return FileRule{Match: []string{name + ".json"}, Suffix: name + ".json", JSON: true}
}

var builtinDerivativeDirs = map[string]string{
	IDFreesurferOutput: "freesurfer",
}

var builtinDatatypes = []Datatype{
	{
		ID: IDAnatT1w, Name: "anat-T1w", Modality: ModalityAnat, Suffix: "T1w", Geometry: true,
		Files: []FileRule{file("T1w.nii.gz", "t1.nii.gz")},
	},
	{
		ID: IDAnatT2w, Name: "anat-T2w", Modality: ModalityAnat, Suffix: "T2w", Geometry: true,
		Files: []FileRule{file("T2w.nii.gz", "t2.nii.gz")},
	},
	{
		ID: IDDWI, Name: "dwi", Modality: ModalityDWI, Suffix: "dwi", Geometry: true, IntendedFor: true,
		Files: []FileRule{
			file("dwi.nii.gz", "dwi.nii.gz"),
			file("dwi.bvec", "dwi.bvecs", "dwi.bvec"),
			file("dwi.bval", "dwi.bvals", "dwi.bval"),
			file("sbref.nii.gz", "sbref.nii.gz"),
			file("sbref.json", "sbref.json"),
		},
	},
	{
		ID: IDFuncBold, Name: "func-bold", Modality: ModalityFunc, Suffix: "bold", Geometry: true,
		IntendedFor: true, Task: TaskRest,
		Files: []FileRule{
			file("bold.nii.gz", "bold.nii.gz"),
			file("events.tsv", "events.tsv"),
			file("events.json", "events.json"),
			file("sbref.nii.gz", "sbref.nii.gz"),
			file("sbref.json", "sbref.json"),
			file("physio.tsv.gz", "physio.tsv.gz"),
			file("physio.json", "physio.json"),
		},
	},
	{
		ID: IDFuncRegressors, Name: "func-regressors", Modality: ModalityFunc, Suffix: "regressors",
		Geometry: true, Desc: "confound",
		Files: []FileRule{file("regressors.tsv", "regressors.tsv")},
	},
	{
		ID: IDFieldmap, Name: "fieldmap", Modality: ModalityFmap,
		Files: []FileRule{
			file("phasediff.nii.gz", "phasediff.nii.gz"),
			file("magnitude.nii.gz", "magnitude.nii.gz"),
			file("magnitude1.nii.gz", "magnitude1.nii.gz"),
			file("magnitude2.nii.gz", "magnitude2.nii.gz"),
			file("fieldmap.nii.gz", "fieldmap.nii.gz"),
			file("phase1.nii.gz", "phase1.nii.gz"),
			file("phase2.nii.gz", "phase2.nii.gz"),
			file("epi1.nii.gz", "epi1.nii.gz"),
			file("epi2.nii.gz", "epi2.nii.gz"),
			fmapSidecar("phasediff"),
			fmapSidecar("fieldmap"),
			fmapSidecar("phase1"),
			fmapSidecar("phase2"),
			fmapSidecar("epi1"),
			fmapSidecar("epi2"),
		},
	},
	{
		ID: IDMEGCTF, Name: "meg-ctf", Modality: ModalityMEG, Suffix: "meg", Task: TaskIndexed,
		Files: megFiles(file("meg.ds", "meg.ds")),
	},
	{
		ID: IDMEGFIF, Name: "meg-fif", Modality: ModalityMEG, Suffix: "meg", Task: TaskIndexed,
		Files: megFiles(
			file("meg.fif", "meg.fif"),
			FileRule{Match: []string{"calibration_meg.dat"}, Suffix: "calibration_meg.dat", Shared: true},
			FileRule{Match: []string{"crosstalk_meg.fif"}, Suffix: "crosstalk_meg.fif", Shared: true},
			FileRule{Match: []string{"destination.fif"}, Suffix: "destination.fif", Shared: true},
		),
	},
	{
		ID: IDEEGEEGLAB, Name: "eeg-eeglab", Modality: ModalityEEG, Suffix: "eeg", Task: TaskIndexed,
		Files: eegFiles(file("eeg.set", "eeg.set"), file("eeg.fdt", "eeg.fdt")),
	},
	{
		ID: IDEEGEDF, Name: "eeg-edf", Modality: ModalityEEG, Suffix: "eeg", Task: TaskIndexed,
		Files: eegFiles(file("eeg.edf", "eeg.edf")),
	},
	{
		ID: IDEEGBrainVision, Name: "eeg-brainvision", Modality: ModalityEEG, Suffix: "eeg", Task: TaskIndexed,
		Files: eegFiles(file("eeg.vhdr", "eeg.vhdr"), file("eeg.vmrk", "eeg.vmrk"), file("eeg.eeg", "eeg.eeg")),
	},
	{
		ID: IDEEGBDF, Name: "eeg-bdf", Modality: ModalityEEG, Suffix: "eeg", Task: TaskIndexed,
		Files: eegFiles(file("eeg.bdf", "eeg.bdf")),
	},
}
