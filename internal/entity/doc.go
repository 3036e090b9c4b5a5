// Package entity turns free-text metadata into BIDS entity labels and
// renders ordered entity names such as "sub-01_ses-02_task-rest_run-1".
package entity
