package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeEngine) Complete(_ context.Context, _ string, userPrompt string) (string, error) {
	f.prompts = append(f.prompts, userPrompt)
	return f.reply, f.err
}

func TestAdapterExtractPage(t *testing.T) {
	engine := &fakeEngine{reply: `[{"Invoice Number": "INV-1", "List of Items": [{"Item Number": "1"}]}]`}
	a := NewAdapter(engine, nil)

	frags, err := a.ExtractPage(context.Background(), "page text")
	require.NoError(t, err)
	require.Len(t, frags, 1)
	assert.Equal(t, "INV-1", frags[0].InvoiceNumber())

	// the page text is embedded in the prompt sent to the engine
	require.Len(t, engine.prompts, 1)
	assert.Contains(t, engine.prompts[0], "page text")
	assert.Contains(t, engine.prompts[0], "INVOICE TEXT TO PROCESS:")
}

func TestAdapterEngineError(t *testing.T) {
	engine := &fakeEngine{err: errors.New("rate limited")}
	a := NewAdapter(engine, nil)

	_, err := a.ExtractPage(context.Background(), "page")
	assert.Error(t, err)
}

func TestAdapterUnparseableReply(t *testing.T) {
	engine := &fakeEngine{reply: "I could not find any invoice data."}
	a := NewAdapter(engine, nil)

	frags, err := a.ExtractPage(context.Background(), "page")
	require.NoError(t, err)
	assert.Empty(t, frags)
}

func TestAdapterRejectsMalformedFragments(t *testing.T) {
	// second fragment's items are not objects; schema validation drops it
	engine := &fakeEngine{reply: `[
		{"Invoice Number": "INV-1"},
		{"Invoice Number": "INV-2", "List of Items": ["not", "objects"]}
	]`}
	a := NewAdapter(engine, nil)

	frags, err := a.ExtractPage(context.Background(), "page")
	require.NoError(t, err)
	require.Len(t, frags, 1)
	assert.Equal(t, "INV-1", frags[0].InvoiceNumber())
}

func TestBuildPromptContainsRules(t *testing.T) {
	prompt := BuildPrompt("sample")

	assert.Contains(t, prompt, "Invoice Number")
	assert.Contains(t, prompt, "Pack Size")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(prompt), "sample"))
}

func TestValidateJSONAgainstSchema(t *testing.T) {
	schema := BuildFragmentJSONSchema()

	assert.NoError(t, ValidateJSONAgainstSchema(schema, []byte(`{"Invoice Number": "A", "Total": 10}`)))
	assert.NoError(t, ValidateJSONAgainstSchema(schema, []byte(`{"Invoice Number": 123}`)))
	assert.Error(t, ValidateJSONAgainstSchema(schema, []byte(`{"Invoice Number": true}`)))
	assert.Error(t, ValidateJSONAgainstSchema(schema, []byte(`{"List of Items": [1, 2]}`)))
	assert.Error(t, ValidateJSONAgainstSchema(schema, []byte(`not json`)))
}
