package points

import (
	"testing"

	"github.com/SlpAus/formula10-league-backend/internal/platform/generation"
)

func TestMirrorStaleAfterBumpDuringRefresh(t *testing.T) {
	// 向量在模型构建前采样；构建期间提交的写入必须让镜像保持过期
	recorded := generation.Current()
	generation.Bump(generation.Results)
	markMirrorFresh(recorded)

	if !mirrorStale() {
		t.Errorf("a bump after the vector sample expected to leave the mirror stale")
	}
}

func TestMirrorFreshUntilNextBump(t *testing.T) {
	markMirrorFresh(generation.Current())
	if mirrorStale() {
		t.Errorf("a freshly marked mirror expected to be fresh")
	}

	generation.Bump(generation.RaceGuesses)
	if !mirrorStale() {
		t.Errorf("a bump expected to invalidate the mirror")
	}
}
