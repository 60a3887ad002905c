package service

import (
	"context"
	"testing"
	"time"

	"dating-app-be/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func birthYearForAge(age int) int {
	return time.Now().Year() - age
}

func newMatchServiceForTest(f *fakeFactory) IMatchService {
	return NewMatchService(f, nil, nopLogger{})
}

func TestReciprocalLikeConfirmsMatch(t *testing.T) {
	f := newFakeFactory()
	svc := newMatchServiceForTest(f)
	ctx := context.Background()

	alice := seedProfile(t, f, "alice", birthYearForAge(30), 18, 99)
	bob := seedProfile(t, f, "bob", birthYearForAge(32), 18, 99)

	first, err := svc.Like(ctx, alice.UserId, bob.Id)
	require.NoError(t, err)
	assert.False(t, first.IsMatched)

	second, err := svc.Like(ctx, bob.UserId, alice.Id)
	require.NoError(t, err)
	assert.True(t, second.IsMatched)

	// Both directions are flagged, so both sides see the match.
	aliceMatches, err := svc.GetMyMatches(ctx, alice.UserId)
	require.NoError(t, err)
	require.Len(t, aliceMatches, 1)
	assert.Equal(t, bob.Id, aliceMatches[0].ToProfileId)

	bobMatches, err := svc.GetMyMatches(ctx, bob.UserId)
	require.NoError(t, err)
	require.Len(t, bobMatches, 1)
	assert.Equal(t, alice.Id, bobMatches[0].ToProfileId)
}

func TestOneDirectionalLikeDoesNotMatch(t *testing.T) {
	f := newFakeFactory()
	svc := newMatchServiceForTest(f)
	ctx := context.Background()

	alice := seedProfile(t, f, "alice", birthYearForAge(30), 18, 99)
	bob := seedProfile(t, f, "bob", birthYearForAge(32), 18, 99)

	res, err := svc.Like(ctx, alice.UserId, bob.Id)
	require.NoError(t, err)
	assert.False(t, res.IsMatched)

	matches, err := svc.GetMyMatches(ctx, alice.UserId)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestPassNeverMatches(t *testing.T) {
	f := newFakeFactory()
	svc := newMatchServiceForTest(f)
	ctx := context.Background()

	alice := seedProfile(t, f, "alice", birthYearForAge(30), 18, 99)
	bob := seedProfile(t, f, "bob", birthYearForAge(32), 18, 99)

	_, err := svc.Pass(ctx, alice.UserId, bob.Id)
	require.NoError(t, err)

	res, err := svc.Like(ctx, bob.UserId, alice.Id)
	require.NoError(t, err)
	assert.False(t, res.IsMatched)
}

func TestFirstActionIsFinal(t *testing.T) {
	f := newFakeFactory()
	svc := newMatchServiceForTest(f)
	ctx := context.Background()

	alice := seedProfile(t, f, "alice", birthYearForAge(30), 18, 99)
	bob := seedProfile(t, f, "bob", birthYearForAge(32), 18, 99)

	_, err := svc.Like(ctx, alice.UserId, bob.Id)
	require.NoError(t, err)

	_, err = svc.Like(ctx, alice.UserId, bob.Id)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeAlreadyMatched))

	// A pass cannot overwrite the earlier like either.
	_, err = svc.Pass(ctx, alice.UserId, bob.Id)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeAlreadyMatched))
}

func TestSelfActionForbidden(t *testing.T) {
	f := newFakeFactory()
	svc := newMatchServiceForTest(f)
	ctx := context.Background()

	alice := seedProfile(t, f, "alice", birthYearForAge(30), 18, 99)

	_, err := svc.Like(ctx, alice.UserId, alice.Id)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeSelfMatchNotAllowed))
}

func TestActionOnUnknownProfile(t *testing.T) {
	f := newFakeFactory()
	svc := newMatchServiceForTest(f)
	ctx := context.Background()

	alice := seedProfile(t, f, "alice", birthYearForAge(30), 18, 99)

	_, err := svc.Like(ctx, alice.UserId, 9999)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeProfileNotFound))
}

func TestActionWithoutProfile(t *testing.T) {
	f := newFakeFactory()
	svc := newMatchServiceForTest(f)
	ctx := context.Background()

	bob := seedProfile(t, f, "bob", birthYearForAge(32), 18, 99)

	_, err := svc.Like(ctx, 777, bob.Id)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeProfileNotFound))
}

func TestGetCandidatesFiltering(t *testing.T) {
	f := newFakeFactory()
	svc := newMatchServiceForTest(f)
	ctx := context.Background()

	me := seedProfile(t, f, "me", birthYearForAge(30), 25, 35)
	inWindow := seedProfile(t, f, "inwindow", birthYearForAge(31), 25, 35)
	tooYoung := seedProfile(t, f, "tooyoung", birthYearForAge(19), 18, 99)
	tooOld := seedProfile(t, f, "tooold", birthYearForAge(40), 18, 99)
	actedOn := seedProfile(t, f, "actedon", birthYearForAge(29), 25, 35)

	_, err := svc.Pass(ctx, me.UserId, actedOn.Id)
	require.NoError(t, err)

	candidates, err := svc.GetCandidates(ctx, me.UserId)
	require.NoError(t, err)

	require.Len(t, candidates, 1)
	assert.Equal(t, inWindow.Id, candidates[0].Id)

	// Guard against silent filter regressions.
	for _, c := range candidates {
		assert.NotEqual(t, me.Id, c.Id)
		assert.NotEqual(t, tooYoung.Id, c.Id)
		assert.NotEqual(t, tooOld.Id, c.Id)
		assert.NotEqual(t, actedOn.Id, c.Id)
	}
}

func TestGetCandidatesIgnoresCandidatePreferences(t *testing.T) {
	f := newFakeFactory()
	svc := newMatchServiceForTest(f)
	ctx := context.Background()

	// Only the caller's window filters the deck. A candidate whose own
	// preferences would exclude the caller is still shown.
	me := seedProfile(t, f, "me", birthYearForAge(30), 25, 35)
	picky := seedProfile(t, f, "picky", birthYearForAge(28), 18, 25)

	candidates, err := svc.GetCandidates(ctx, me.UserId)
	require.NoError(t, err)

	require.Len(t, candidates, 1)
	assert.Equal(t, picky.Id, candidates[0].Id)
}

func TestGetCandidatesCap(t *testing.T) {
	f := newFakeFactory()
	svc := newMatchServiceForTest(f)
	ctx := context.Background()

	me := seedProfile(t, f, "me", birthYearForAge(30), 18, 99)
	for i := 0; i < 15; i++ {
		seedProfile(t, f, "candidate"+string(rune('a'+i)), birthYearForAge(25+i%10), 18, 99)
	}

	candidates, err := svc.GetCandidates(ctx, me.UserId)
	require.NoError(t, err)
	assert.Len(t, candidates, candidateLimit)
}
