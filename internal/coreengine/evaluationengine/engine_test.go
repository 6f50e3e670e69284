package evaluationengine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accuracy-eval-platform/backend/internal/coreengine/metricscalculator"
	"accuracy-eval-platform/backend/internal/coreengine/normalizer"
)

func newTestEngine() *Engine {
	return NewEngine(nil, metricscalculator.DefaultThresholds)
}

func pair(field, ref, hyp string) FieldPairInput {
	return FieldPairInput{Field: field, Reference: normalizer.New(ref), Hypothesis: normalizer.New(hyp)}
}

func TestEvaluateRecordMeanOfSimilarities(t *testing.T) {
	e := newTestEngine()
	rec, err := e.EvaluateRecord(RecordInput{
		RecordID: "1",
		Fields: []FieldPairInput{
			pair("甲", "相同內容", "相同內容"), // 1.0
			pair("乙", "ab", "ax"),       // 2*1/4 = 0.5
			pair("丙", "完全不同", "毫無交集"),  // 0.0
		},
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, rec.OverallAccuracy, 1e-12)
	assert.Equal(t, 3, rec.TotalFields)
	assert.Equal(t, 1, rec.MatchedFields)
	assert.False(t, rec.FullMatch)
	assert.Equal(t, metricscalculator.TierFair, rec.Tier)
	assert.Equal(t, []string{"甲", "乙", "丙"}, rec.FieldOrder)
}

func TestEvaluateRecordFullMatch(t *testing.T) {
	e := newTestEngine()
	rec, err := e.EvaluateRecord(RecordInput{
		RecordID:  "7",
		SubjectID: "受編001",
		Fields: []FieldPairInput{
			pair("發文日期", "1140424", "114/04/24"),
			pair("金額", "1,000", "1000"),
		},
	})
	require.NoError(t, err)
	assert.True(t, rec.FullMatch)
	assert.Equal(t, 1.0, rec.OverallAccuracy)
	assert.Equal(t, "受編001", rec.SubjectID)
	assert.Equal(t, metricscalculator.TierExcellent, rec.Tier)
}

func TestEvaluateRecordEmptyFieldSet(t *testing.T) {
	e := newTestEngine()
	_, err := e.EvaluateRecord(RecordInput{RecordID: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyFieldSet))

	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestEvaluateRecordsOrdered(t *testing.T) {
	e := newTestEngine()
	var inputs []RecordInput
	for i := 0; i < 50; i++ {
		inputs = append(inputs, RecordInput{
			RecordID: fmt.Sprintf("rec-%02d", i),
			Fields:   []FieldPairInput{pair("欄", "值", "值")},
		})
	}
	results, err := e.EvaluateRecords(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, results, 50)
	for i, res := range results {
		assert.Equal(t, fmt.Sprintf("rec-%02d", i), res.RecordID)
	}
}

func TestEvaluateRecordsEmpty(t *testing.T) {
	e := newTestEngine()
	_, err := e.EvaluateRecords(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrEmptyRecordSet))
}

func TestEvaluateRecordsPropagatesFieldSetError(t *testing.T) {
	e := newTestEngine()
	_, err := e.EvaluateRecords(context.Background(), []RecordInput{
		{RecordID: "ok", Fields: []FieldPairInput{pair("欄", "a", "a")}},
		{RecordID: "broken"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyFieldSet))
}

func TestEvaluateRecordsCancelledContext(t *testing.T) {
	e := newTestEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.EvaluateRecords(ctx, []RecordInput{
		{RecordID: "1", Fields: []FieldPairInput{pair("欄", "a", "a")}},
	})
	assert.Error(t, err)
}

func TestSummarizeTierDistribution(t *testing.T) {
	e := newTestEngine()
	records := []RecordResult{
		{OverallAccuracy: 1.0, Tier: metricscalculator.TierExcellent, FullMatch: true},
		{OverallAccuracy: 0.85, Tier: metricscalculator.TierGood},
		{OverallAccuracy: 0.6, Tier: metricscalculator.TierFair},
		{OverallAccuracy: 0.3, Tier: metricscalculator.TierPoor},
	}
	s := e.Summarize(records)
	assert.Equal(t, 4, s.TotalRecords)
	assert.Equal(t, 1, s.FullyCorrectRecords)
	assert.InDelta(t, (1.0+0.85+0.6+0.3)/4.0, s.OverallAccuracy, 1e-12)

	require.Len(t, s.TierDistribution, 4)
	for i, bucket := range s.TierDistribution {
		assert.Equal(t, metricscalculator.Tiers[i], bucket.Tier)
		assert.Equal(t, 1, bucket.Count)
		assert.InDelta(t, 25.0, bucket.Percent, 1e-12)
	}
}

func TestSummarizeFieldStats(t *testing.T) {
	e := newTestEngine()
	inputs := []RecordInput{
		{RecordID: "1", Fields: []FieldPairInput{pair("機關", "教育局", "教育局"), pair("日期", "1140424", "1140424")}},
		{RecordID: "2", Fields: []FieldPairInput{pair("機關", "教育局", "社會局"), pair("日期", "1140424", "1140425")}},
	}
	results, err := e.EvaluateRecords(context.Background(), inputs)
	require.NoError(t, err)
	s := e.Summarize(results)

	assert.Equal(t, []string{"機關", "日期"}, s.FieldOrder)

	agency := s.FieldStats["機關"]
	assert.Equal(t, 2, agency.Records)
	assert.Equal(t, 1, agency.ExactMatches)
	assert.InDelta(t, 0.5, agency.MatchRate, 1e-12)
	assert.Equal(t, 1.0, agency.MaxSimilarity)
	// 教育局 vs 社會局 shares only 局: 2*1/6.
	assert.InDelta(t, 1.0/3.0, agency.MinSimilarity, 1e-12)
	assert.InDelta(t, (1.0+1.0/3.0)/2.0, agency.MeanSimilarity, 1e-12)

	date := s.FieldStats["日期"]
	assert.Equal(t, 1, date.ExactMatches)
	// Day component differs: 2 of 3 parts match.
	assert.InDelta(t, 2.0/3.0, date.MinSimilarity, 1e-12)
}

func TestSummarizeEmpty(t *testing.T) {
	e := newTestEngine()
	s := e.Summarize(nil)
	assert.Equal(t, 0, s.TotalRecords)
	assert.Equal(t, 0.0, s.OverallAccuracy)
	assert.Empty(t, s.TierDistribution)
}

func TestEvaluateModelsIndependent(t *testing.T) {
	e := newTestEngine()
	models := []ModelInput{
		{Model: "gemma-3-27b", Records: []RecordInput{
			{RecordID: "1", Fields: []FieldPairInput{pair("欄", "值", "值")}},
		}},
		{Model: "chatgpt-4.1", Records: []RecordInput{
			{RecordID: "1", Fields: []FieldPairInput{pair("欄", "值", "錯")}},
		}},
	}
	results, err := e.EvaluateModels(context.Background(), models)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "gemma-3-27b", results[0].Model)
	assert.Equal(t, 1.0, results[0].Summary.OverallAccuracy)
	assert.Equal(t, "chatgpt-4.1", results[1].Model)
	assert.Equal(t, 0.0, results[1].Summary.OverallAccuracy)

	// One model's result set must not share state with another's: mutating
	// the first model's records leaves the second untouched.
	results[0].Records[0].OverallAccuracy = -1
	results[0].Records[0].RecordID = "mutated"
	results[0].Summary.OverallAccuracy = -1
	assert.Equal(t, "1", results[1].Records[0].RecordID)
	assert.Equal(t, 0.0, results[1].Records[0].OverallAccuracy)
	assert.Equal(t, 0.0, results[1].Summary.OverallAccuracy)
}

func TestEvaluateModelsSkipsFailed(t *testing.T) {
	e := newTestEngine()
	models := []ModelInput{
		{Model: "empty-model"},
		{Model: "good-model", Records: []RecordInput{
			{RecordID: "1", Fields: []FieldPairInput{pair("欄", "值", "值")}},
		}},
	}
	results, err := e.EvaluateModels(context.Background(), models)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "good-model", results[0].Model)
}

func TestEvaluateModelsAllFailed(t *testing.T) {
	e := newTestEngine()
	_, err := e.EvaluateModels(context.Background(), []ModelInput{{Model: "a"}, {Model: "b"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyRecordSet))
}

func TestEvaluateModelsEmpty(t *testing.T) {
	e := newTestEngine()
	_, err := e.EvaluateModels(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrEmptyModelSet))
}
