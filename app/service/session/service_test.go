package session

import (
	"context"
	"testing"

	"pukaar/app/service/redflag"
	"pukaar/app/service/screening"

	"github.com/stretchr/testify/require"
)

func TestService_CreateAndGet(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc := NewInMemory()

	sess, err := svc.Create(ctx)
	req.NoError(err)
	req.NotEmpty(sess.ID)
	req.Equal(FlowInitial, sess.FlowType)
	req.Zero(sess.CurrentStep)
	req.Empty(sess.History)

	loaded, err := svc.Get(ctx, sess.ID)
	req.NoError(err)
	req.Equal(sess.ID, loaded.ID)
	req.Equal(FlowInitial, loaded.FlowType)
}

func TestService_GetMissing(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc := NewInMemory()

	_, err := svc.Get(ctx, "nope")
	req.ErrorIs(err, ErrNotFound)

	_, err = svc.Get(ctx, "")
	req.ErrorIs(err, ErrNotFound)
}

func TestService_AppendMessageAndHistory(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc := NewInMemory()

	sess, err := svc.Create(ctx)
	req.NoError(err)

	req.NoError(svc.AppendMessage(ctx, sess.ID, "user", "my baby has a cough", nil))
	req.NoError(svc.AppendMessage(ctx, sess.ID, "system", "tell me more", map[string]string{"agent": "triage"}))

	history, err := svc.History(ctx, sess.ID)
	req.NoError(err)
	req.Len(history, 2)
	req.Equal("user", history[0].Role)
	req.Equal("my baby has a cough", history[0].Content)
	req.Equal("triage", history[1].Metadata["agent"])
}

func TestService_SetFlowResetsStep(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc := NewInMemory()

	sess, err := svc.Create(ctx)
	req.NoError(err)

	req.NoError(svc.SetFlow(ctx, sess.ID, FlowScreening))
	req.NoError(svc.AdvanceStep(ctx, sess.ID))
	req.NoError(svc.AdvanceStep(ctx, sess.ID))

	loaded, err := svc.Get(ctx, sess.ID)
	req.NoError(err)
	req.Equal(FlowScreening, loaded.FlowType)
	req.Equal(2, loaded.CurrentStep)

	req.NoError(svc.SetFlow(ctx, sess.ID, FlowFollowUp))

	loaded, err = svc.Get(ctx, sess.ID)
	req.NoError(err)
	req.Equal(FlowFollowUp, loaded.FlowType)
	req.Zero(loaded.CurrentStep)
}

func TestService_SetFlowRejectsUnknown(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc := NewInMemory()

	sess, err := svc.Create(ctx)
	req.NoError(err)

	req.Error(svc.SetFlow(ctx, sess.ID, FlowType("bogus")))
}

func TestService_ScreeningDataAndRedFlags(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc := NewInMemory()

	sess, err := svc.Create(ctx)
	req.NoError(err)

	result := screening.Result{
		Condition: "pneumonia_ari",
		RiskLevel: screening.RiskMedium,
		Urgency:   screening.UrgencySoon,
	}
	req.NoError(svc.SetScreeningData(ctx, sess.ID, "Pneumonia / ARI", result))

	flag := redflag.Result{
		Detected: true,
		Trigger:  "seizure",
		FlagType: "convulsions_seizures",
		Severity: redflag.SeverityHigh,
	}
	req.NoError(svc.AddRedFlag(ctx, sess.ID, flag))

	loaded, err := svc.Get(ctx, sess.ID)
	req.NoError(err)
	req.Equal(result, loaded.ScreeningData["Pneumonia / ARI"])

	latest, ok := loaded.LatestRedFlag()
	req.True(ok)
	req.Equal("convulsions_seizures", latest.FlagType)
}

func TestService_Delete(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc := NewInMemory()

	sess, err := svc.Create(ctx)
	req.NoError(err)

	deleted, err := svc.Delete(ctx, sess.ID)
	req.NoError(err)
	req.True(deleted)

	_, err = svc.Get(ctx, sess.ID)
	req.ErrorIs(err, ErrNotFound)

	deleted, err = svc.Delete(ctx, sess.ID)
	req.NoError(err)
	req.False(deleted)
}

func TestSession_RecentHistory(t *testing.T) {
	req := require.New(t)

	sess := &Session{}
	for _, content := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		sess.History = append(sess.History, Message{Role: "user", Content: content})
	}

	recent := sess.RecentHistory(5)
	req.Len(recent, 5)
	req.Equal("c", recent[0].Content)
	req.Equal("g", recent[4].Content)

	req.Len(sess.RecentHistory(10), 7)
}
