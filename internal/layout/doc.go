// Package layout computes where an input lands in the BIDS tree: its
// directory and the full and short entity names of its files.
//
// Naming rules:
//  1. Raw data goes to <root>/sub-<subject>[/ses-<session>]/<modality>;
//     derivatives go to <root>/derivatives/<name>[.<N>].
//  2. The short name holds only sub, ses, acq (when given as "acq") and
//     space; files shared across runs of a session use it.
//  3. task comes from "task", then "TaskName", then the datatype's default.
//  4. "acquisition" wins over "acq".
//  5. Repeated inputs without a run get acq-id<N> so they never collide.
package layout
