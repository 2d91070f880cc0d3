package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDTCSet_StorageForm(t *testing.T) {
	set := DTCSet{Pre: []string{"P0420", "U0100"}, Post: []string{"B1234"}}
	assert.Equal(t, "PRE: P0420, U0100 | POST: B1234", set.String())
	assert.Equal(t, set, ParseDTCSet(set.String()))

	assert.Equal(t, "POST: B1234", DTCSet{Post: []string{"B1234"}}.String())
	assert.Empty(t, DTCSet{}.String())
}

func TestParseDTCSet_Unlabelled(t *testing.T) {
	assert.Equal(t, DTCSet{Pre: []string{"P0420", "C0035"}}, ParseDTCSet("P0420; C0035"))
	assert.Equal(t, DTCSet{}, ParseDTCSet("  "))
}

func TestDTCSet_WithPhaseKeepsOtherPhase(t *testing.T) {
	set := DTCSet{Pre: []string{"P0420"}}
	next := set.WithPhase(ScanPhasePost, []string{"B1234"})
	assert.Equal(t, []string{"P0420"}, next.Pre)
	assert.Equal(t, []string{"B1234"}, next.Post)
	assert.Nil(t, set.Post)
}

func TestParseScanPhase(t *testing.T) {
	assert.Equal(t, ScanPhasePost, ParseScanPhase("post-scan"))
	assert.Equal(t, ScanPhasePost, ParseScanPhase(" after "))
	assert.Equal(t, ScanPhasePre, ParseScanPhase("initial"))
}

func TestTechnician_Covers(t *testing.T) {
	tech := Technician{Name: "Rosa", Regions: "North, east ", Active: true}
	assert.True(t, tech.Covers("EAST"))
	assert.False(t, tech.Covers("West"))
	assert.False(t, tech.Covers(""))
}
