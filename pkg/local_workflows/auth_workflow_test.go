package localworkflows

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/auth"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/errorcatalog"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/mocks"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/ui"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/workflow"
)

const testApiKey = "cd_live_0123456789abcdef"

func payloadString(t *testing.T, output []workflow.Data) string {
	t.Helper()
	require.Len(t, output, 1)
	text, ok := output[0].GetPayload().(string)
	require.True(t, ok)
	return text
}

func Test_AuthWorkflow_StoresKeyFromFlag(t *testing.T) {
	config := configuration.NewInMemory()
	config.Set("api-key", "  "+testApiKey+" ")

	output, err := Auth.Entrypoint(newTestInvocation(t, config, ui.NewDiscardUi()), nil)
	require.NoError(t, err)

	assert.Equal(t, authenticatedMessage, payloadString(t, output))
	assert.Equal(t, testApiKey, config.GetString(configuration.API_KEY))
}

func Test_AuthWorkflow_PromptsForKey(t *testing.T) {
	config := configuration.NewInMemory()
	ctrl := gomock.NewController(t)
	userInterface := mocks.NewMockUserInterface(ctrl)
	userInterface.EXPECT().InputSecret("API key").Return(testApiKey, nil)

	_, err := Auth.Entrypoint(newTestInvocation(t, config, userInterface), nil)
	require.NoError(t, err)
	assert.Equal(t, testApiKey, config.GetString(configuration.API_KEY))
}

func Test_AuthWorkflow_EmptyKeyIsRejected(t *testing.T) {
	config := configuration.NewInMemory()

	_, err := Auth.Entrypoint(newTestInvocation(t, config, ui.NewDiscardUi()), nil)
	assert.ErrorIs(t, err, errorcatalog.ErrConfiguration)
}

func Test_AuthWorkflow_PromptFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	userInterface := mocks.NewMockUserInterface(ctrl)
	userInterface.EXPECT().InputSecret(gomock.Any()).Return("", errors.New("not a terminal"))

	_, err := Auth.Entrypoint(newTestInvocation(t, configuration.NewInMemory(), userInterface), nil)
	assert.ErrorIs(t, err, errorcatalog.ErrIO)
}

func Test_AuthWorkflow_Remove(t *testing.T) {
	config := configuration.NewInMemory()
	config.Set(configuration.API_KEY, testApiKey)
	config.Set("remove", true)

	output, err := Auth.Entrypoint(newTestInvocation(t, config, ui.NewDiscardUi()), nil)
	require.NoError(t, err)

	assert.Equal(t, removedMessage, payloadString(t, output))
	assert.False(t, config.IsSet(configuration.API_KEY))
}

func Test_AuthWorkflow_Status(t *testing.T) {
	t.Run("configured", func(t *testing.T) {
		config := configuration.NewInMemory()
		config.Set(configuration.API_KEY, testApiKey)
		config.Set(configuration.API_URL, "https://api-eu.cybedefend.com")
		config.Set("status", true)

		output, err := Auth.Entrypoint(newTestInvocation(t, config, ui.NewDiscardUi()), nil)
		require.NoError(t, err)

		text := payloadString(t, output)
		assert.Contains(t, text, "https://api-eu.cybedefend.com")
		assert.Contains(t, text, "cd_l********************")
		assert.NotContains(t, text, testApiKey)
	})

	t.Run("not configured", func(t *testing.T) {
		config := configuration.NewInMemory()
		config.Set("status", true)

		output, err := Auth.Entrypoint(newTestInvocation(t, config, ui.NewDiscardUi()), nil)
		require.NoError(t, err)
		assert.Equal(t, auth.ErrApiKeyNotConfigured.Error(), payloadString(t, output))
	})
}

func Test_MaskApiKey(t *testing.T) {
	assert.Equal(t, "****", maskApiKey("abcd"))
	assert.Equal(t, "********", maskApiKey("abcdefgh"))
	assert.Equal(t, "abcd*****", maskApiKey("abcdefghi"))
}
