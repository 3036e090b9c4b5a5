package datatype

//go:generate go tool stringer -type=Modality -linecomment -output=modality_string.go

// Modality is the BIDS modality folder a datatype is placed under.
type Modality int

const (
	_ Modality = iota // skip zero value, it marks an unset modality

	ModalityAnat        // anat
	ModalityDWI         // dwi
	ModalityFunc        // func
	ModalityFmap        // fmap
	ModalityMEG         // meg
	ModalityEEG         // eeg
	ModalityDerivatives // derivatives
)

// IsElectrophysiology reports whether m is meg or eeg.
func (m Modality) IsElectrophysiology() bool {
	return m == ModalityMEG || m == ModalityEEG
}
