package refresh

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStage_RequiresRecovery(t *testing.T) {
	tests := []struct {
		stage Stage
		want  bool
	}{
		{StageResolveTarget, false},
		{StageIdentifyVolumes, false},
		{StageCloneVolumes, false},
		{StageVolumeAvailable, false},
		{StageAttachVolume, true},
		{StageBootConfig, true},
		{StageStartup, true},
		{StageFinalStatusCheck, true},
		{Stage(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stage.RequiresRecovery())
		})
	}
}

func TestStageError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := stageErrf(StageStartup, "starting: %w", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "STARTUP")

	var se *StageError
	wrapped := fmt.Errorf("outer: %w", err)
	assert.True(t, errors.As(wrapped, &se))
	assert.Equal(t, StageStartup, se.Stage)
}

func TestState_CloneVolumeIDs(t *testing.T) {
	st := NewState()
	assert.Nil(t, st.CloneVolumeIDs())

	st.BootVolumeID = "boot-1"
	assert.Equal(t, []string{"boot-1"}, st.CloneVolumeIDs())

	st.DataVolumeIDs = []string{"data-1", "data-2"}
	assert.Equal(t, []string{"boot-1", "data-1", "data-2"}, st.CloneVolumeIDs())
}
