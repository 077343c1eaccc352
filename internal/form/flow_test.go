package form

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeSteps() []Step {
	return []Step{
		{Name: "one", Required: []string{"a"}},
		{Name: "two", Required: []string{"b"}, Check: func(f Fields) error {
			if f.Get("b") == "bad" {
				return errors.New("b must not be bad")
			}
			return nil
		}},
		{Name: "three", Required: []string{"c"}},
	}
}

// recorder is a Submitter that remembers what it stored.
type recorder struct {
	stored []Fields
	err    error
}

func (r *recorder) submit(f Fields) (any, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.stored = append(r.stored, f)
	return f.Get("a"), nil
}

func TestFlow_NextBackSubmit(t *testing.T) {
	rec := &recorder{}
	flow := New("f1", "test", threeSteps(), rec.submit)

	state, err := flow.Next()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "a", ve.Field)
	assert.Equal(t, "one", ve.Step)
	assert.Equal(t, Editing, state)
	assert.Equal(t, 0, flow.Snapshot().Step)

	require.NoError(t, flow.Set("a", "alpha"))
	_, err = flow.Next()
	require.NoError(t, err)
	assert.Equal(t, "two", flow.Snapshot().Name)

	require.NoError(t, flow.Set("b", "bad"))
	_, err = flow.Next()
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "two", ve.Step)

	require.NoError(t, flow.Back())
	assert.Equal(t, 0, flow.Snapshot().Step)
	assert.Equal(t, "alpha", flow.Snapshot().Fields.Get("a"), "back keeps entered values")
	assert.ErrorIs(t, flow.Back(), ErrFirstStep)

	require.NoError(t, flow.Merge(Fields{"b": {"good"}, "c": {"gamma"}}))
	_, err = flow.Next()
	require.NoError(t, err)
	_, err = flow.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, flow.Snapshot().Step)
	assert.Empty(t, rec.stored)

	state, err = flow.Next()
	require.NoError(t, err)
	assert.Equal(t, Submitted, state)
	require.Len(t, rec.stored, 1)
	assert.Equal(t, "alpha", flow.Snapshot().Result)

	_, err = flow.Next()
	assert.ErrorIs(t, err, ErrFlowClosed)
	assert.ErrorIs(t, flow.Set("a", "x"), ErrFlowClosed)
}

func TestFlow_SubmitIsAllOrNothing(t *testing.T) {
	testCases := []struct {
		name   string
		fields Fields
		subErr error
		field  string
	}{
		{name: "later step missing", fields: Fields{"a": {"x"}, "b": {"y"}}, field: "c"},
		{name: "blank value counts as missing", fields: Fields{"a": {"x"}, "b": {"  "}, "c": {"z"}}, field: "b"},
		{name: "submitter refuses", fields: Fields{"a": {"x"}, "b": {"y"}, "c": {"z"}}, subErr: errors.New("store refused")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &recorder{err: tc.subErr}
			flow := New("f", "test", threeSteps(), rec.submit)
			require.NoError(t, flow.Merge(tc.fields))

			result, err := flow.Submit()
			assert.Error(t, err)
			assert.Nil(t, result)
			if tc.field != "" {
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tc.field, ve.Field)
			}

			snap := flow.Snapshot()
			assert.Equal(t, Editing, snap.State)
			assert.Equal(t, 0, snap.Step)
			assert.Empty(t, rec.stored)
		})
	}
}

func TestFlow_CancelDiscardsEverything(t *testing.T) {
	rec := &recorder{}
	flow := New("f", "test", threeSteps(), rec.submit)
	require.NoError(t, flow.Set("a", "x"))
	_, err := flow.Next()
	require.NoError(t, err)
	require.NoError(t, flow.Set("b", "y"))

	require.NoError(t, flow.Cancel())
	snap := flow.Snapshot()
	assert.Equal(t, Cancelled, snap.State)
	assert.Empty(t, snap.Fields)
	assert.Empty(t, rec.stored)

	_, err = flow.Submit()
	assert.ErrorIs(t, err, ErrFlowClosed)
	assert.ErrorIs(t, flow.Cancel(), ErrFlowClosed)
}

func TestFields(t *testing.T) {
	f := Fields{}
	f.Set("images", "a.jpg", " ", "b.jpg")
	f.Add("images", "c.jpg")
	f.Set("title", "  Bike ")

	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, f.Values("images"))
	assert.Equal(t, "Bike", f.Get("title"))
	assert.False(t, f.Has("missing"))
	assert.Equal(t, map[string]string{"images": "a.jpg", "title": "Bike"}, f.Flat())
}

func TestFields_UnmarshalJSON(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected Fields
		wantErr  bool
	}{
		{name: "single string", input: `{"title":"Bike"}`, expected: Fields{"title": {"Bike"}}},
		{name: "list", input: `{"images":["a.jpg","b.jpg"]}`, expected: Fields{"images": {"a.jpg", "b.jpg"}}},
		{name: "mixed with null", input: `{"title":"Bike","notes":null}`, expected: Fields{"title": {"Bike"}, "notes": nil}},
		{name: "number rejected", input: `{"price":30}`, wantErr: true},
		{name: "not an object", input: `["Bike"]`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var f Fields
			err := json.Unmarshal([]byte(tc.input), &f)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, f)
		})
	}
}
