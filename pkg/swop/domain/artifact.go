package domain

import "github.com/klauer/swop/internal/config"

// ArtifactType distinguishes the two artifact slots a monster carries.
type ArtifactType int

const (
	ArtifactTypeAttribute ArtifactType = 1
	ArtifactTypeUnitType  ArtifactType = 2
)

// ArtifactSubEffect is one artifact sub-roll: an effect, its rolled value
// and the number of upgrades ("rolls") it has received.
type ArtifactSubEffect struct {
	EffectID config.EffectID `json:"effect_id"`
	Value    int             `json:"value"`
	Rolls    int             `json:"rolls"`
}

// Artifact is an immutable record for one inventory artifact (spec §3).
type Artifact struct {
	ArtifactID   int64        `json:"artifact_id"`
	Type         ArtifactType `json:"type"`
	Slot         int          `json:"slot"`
	Attribute    int          `json:"attribute"` // populated for Type == ArtifactTypeAttribute
	Rank         int          `json:"rank"`
	Level        int          `json:"level"`
	OriginalRank int          `json:"original_rank"`

	PriEffect  EffectValue         `json:"pri_effect"`
	SecEffects []ArtifactSubEffect `json:"sec_effects"`

	OccupiedID int64 `json:"occupied_id"`
}

// HasSubEffect reports whether the artifact carries a sub-roll of the given
// effect id, used to test a build's artifact_substats filter.
func (a Artifact) HasSubEffect(id config.EffectID) bool {
	for _, sub := range a.SecEffects {
		if sub.EffectID == id {
			return true
		}
	}
	return false
}
