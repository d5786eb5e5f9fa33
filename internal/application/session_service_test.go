package application

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/halvora/aa-wallet-cli/internal/domain"
	"github.com/halvora/aa-wallet-cli/internal/ports"
	"github.com/halvora/aa-wallet-cli/internal/ports/mocks"
)

var (
	testAccount = common.HexToAddress("0x692be0A2Aabb8a72AE17479FC096ce0032e78954")
	testChain   = domain.Chain{ID: 11155111, Name: "sepolia", NativeSymbol: "ETH", NativeDecimals: 18}
)

func testConnectConfig() ConnectConfig {
	return ConnectConfig{APIKey: "test-key", Chain: testChain, GasPolicyID: "policy-1"}
}

func mockAnyContext() interface{} {
	return mock.MatchedBy(func(context.Context) bool { return true })
}

func TestConnectSuccessPopulatesSession(t *testing.T) {
	signer := mocks.NewMockSignerAdapter(t)
	factory := mocks.NewMockAccountClientFactory(t)
	client := mocks.NewMockAccountClient(t)
	service := NewSessionService(signer, factory)

	signer.EXPECT().Authenticate(mockAnyContext()).Return(nil)
	factory.EXPECT().CreateAccountClient(mockAnyContext(), mock.AnythingOfType("ports.ProvisionConfig")).Return(client, nil)
	client.EXPECT().Address(mockAnyContext()).Return(testAccount, nil)
	client.EXPECT().Balance(mockAnyContext(), testAccount).Return(big.NewInt(1_000_000), nil)
	signer.EXPECT().IdentityInfo(mockAnyContext()).Return(ports.Identity{DisplayName: "Ada"}, nil)

	session, err := service.Connect(context.Background(), testConnectConfig())
	require.NoError(t, err)

	assert.Equal(t, domain.SessionActive, session.Status)
	assert.Equal(t, testAccount, session.AccountAddress)
	assert.Equal(t, "Ada", session.DisplayName)
	assert.Equal(t, big.NewInt(1_000_000), session.Balance)
	assert.Equal(t, testChain.ID, session.ChainID)
}

func TestConnectAuthFailureSettlesDisconnected(t *testing.T) {
	signer := mocks.NewMockSignerAdapter(t)
	factory := mocks.NewMockAccountClientFactory(t)
	service := NewSessionService(signer, factory)

	signer.EXPECT().Authenticate(mockAnyContext()).Return(errors.New("popup closed"))

	session, err := service.Connect(context.Background(), testConnectConfig())
	require.ErrorIs(t, err, domain.ErrAuthFailed)

	assert.Equal(t, domain.SessionDisconnected, session.Status)
	assert.Equal(t, common.Address{}, session.AccountAddress)
	assert.Nil(t, session.Balance)
}

func TestConnectProvisioningFailureSettlesDisconnected(t *testing.T) {
	signer := mocks.NewMockSignerAdapter(t)
	factory := mocks.NewMockAccountClientFactory(t)
	service := NewSessionService(signer, factory)

	signer.EXPECT().Authenticate(mockAnyContext()).Return(nil)
	factory.EXPECT().CreateAccountClient(mockAnyContext(), mock.AnythingOfType("ports.ProvisionConfig")).Return(nil, errors.New("policy denied"))
	signer.EXPECT().Logout(mockAnyContext()).Return(nil)

	session, err := service.Connect(context.Background(), testConnectConfig())
	require.ErrorIs(t, err, domain.ErrAccountProvisioning)
	assert.Equal(t, domain.SessionDisconnected, session.Status)
}

func TestDisconnectDuringConnectWaitsForSettle(t *testing.T) {
	signer := mocks.NewMockSignerAdapter(t)
	factory := mocks.NewMockAccountClientFactory(t)
	client := mocks.NewMockAccountClient(t)
	service := NewSessionService(signer, factory)

	authStarted := make(chan struct{})
	authRelease := make(chan struct{})
	signer.EXPECT().Authenticate(mockAnyContext()).RunAndReturn(func(context.Context) error {
		close(authStarted)
		<-authRelease
		return nil
	})
	factory.EXPECT().CreateAccountClient(mockAnyContext(), mock.AnythingOfType("ports.ProvisionConfig")).Return(client, nil)
	client.EXPECT().Address(mockAnyContext()).Return(testAccount, nil)
	client.EXPECT().Balance(mockAnyContext(), testAccount).Return(big.NewInt(5), nil)
	signer.EXPECT().IdentityInfo(mockAnyContext()).Return(ports.Identity{DisplayName: "Ada"}, nil)
	signer.EXPECT().Logout(mockAnyContext()).Return(nil).Once()

	connectDone := make(chan struct{})
	go func() {
		defer close(connectDone)
		_, _ = service.Connect(context.Background(), testConnectConfig())
	}()
	<-authStarted

	disconnectDone := make(chan struct{})
	go func() {
		defer close(disconnectDone)
		assert.NoError(t, service.Disconnect(context.Background()))
	}()

	// The disconnect must not apply while connect is still in flight.
	select {
	case <-disconnectDone:
		t.Fatal("disconnect applied before connect settled")
	case <-time.After(50 * time.Millisecond):
	}

	close(authRelease)
	<-connectDone
	<-disconnectDone

	assert.Equal(t, domain.SessionDisconnected, service.Snapshot().Status)
}

func TestRefreshWhileDisconnectedMakesNoNetworkCalls(t *testing.T) {
	signer := mocks.NewMockSignerAdapter(t)
	factory := mocks.NewMockAccountClientFactory(t)
	service := NewSessionService(signer, factory)

	_, _, err := service.Refresh(context.Background())
	require.ErrorIs(t, err, domain.ErrNotActive)
	// Mock expectations assert that neither the signer nor the factory
	// was touched.
}

func TestRefreshRefetchesBalanceAndKeepsAddress(t *testing.T) {
	signer := mocks.NewMockSignerAdapter(t)
	factory := mocks.NewMockAccountClientFactory(t)
	client := mocks.NewMockAccountClient(t)
	service := NewSessionService(signer, factory)

	signer.EXPECT().Authenticate(mockAnyContext()).Return(nil)
	factory.EXPECT().CreateAccountClient(mockAnyContext(), mock.AnythingOfType("ports.ProvisionConfig")).Return(client, nil)
	client.EXPECT().Address(mockAnyContext()).Return(testAccount, nil).Once()
	client.EXPECT().Balance(mockAnyContext(), testAccount).Return(big.NewInt(10), nil).Once()
	signer.EXPECT().IdentityInfo(mockAnyContext()).Return(ports.Identity{}, nil)

	_, err := service.Connect(context.Background(), testConnectConfig())
	require.NoError(t, err)

	client.EXPECT().Balance(mockAnyContext(), testAccount).Return(big.NewInt(42), nil).Once()

	address, balance, err := service.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testAccount, address)
	assert.Equal(t, big.NewInt(42), balance)
	assert.Equal(t, big.NewInt(42), service.Snapshot().Balance)
}

func TestDisconnectIsIdempotent(t *testing.T) {
	signer := mocks.NewMockSignerAdapter(t)
	factory := mocks.NewMockAccountClientFactory(t)
	client := mocks.NewMockAccountClient(t)
	service := NewSessionService(signer, factory)

	signer.EXPECT().Authenticate(mockAnyContext()).Return(nil)
	factory.EXPECT().CreateAccountClient(mockAnyContext(), mock.AnythingOfType("ports.ProvisionConfig")).Return(client, nil)
	client.EXPECT().Address(mockAnyContext()).Return(testAccount, nil)
	client.EXPECT().Balance(mockAnyContext(), testAccount).Return(big.NewInt(1), nil)
	signer.EXPECT().IdentityInfo(mockAnyContext()).Return(ports.Identity{}, nil)
	signer.EXPECT().Logout(mockAnyContext()).Return(nil).Once()

	_, err := service.Connect(context.Background(), testConnectConfig())
	require.NoError(t, err)

	require.NoError(t, service.Disconnect(context.Background()))
	require.NoError(t, service.Disconnect(context.Background()))
	assert.Equal(t, domain.SessionDisconnected, service.Snapshot().Status)
}

func TestDisconnectSwallowsLogoutFailure(t *testing.T) {
	signer := mocks.NewMockSignerAdapter(t)
	factory := mocks.NewMockAccountClientFactory(t)
	client := mocks.NewMockAccountClient(t)
	service := NewSessionService(signer, factory)

	signer.EXPECT().Authenticate(mockAnyContext()).Return(nil)
	factory.EXPECT().CreateAccountClient(mockAnyContext(), mock.AnythingOfType("ports.ProvisionConfig")).Return(client, nil)
	client.EXPECT().Address(mockAnyContext()).Return(testAccount, nil)
	client.EXPECT().Balance(mockAnyContext(), testAccount).Return(big.NewInt(1), nil)
	signer.EXPECT().IdentityInfo(mockAnyContext()).Return(ports.Identity{}, nil)
	signer.EXPECT().Logout(mockAnyContext()).Return(errors.New("provider unreachable")).Once()

	_, err := service.Connect(context.Background(), testConnectConfig())
	require.NoError(t, err)

	require.NoError(t, service.Disconnect(context.Background()))
	assert.Equal(t, domain.SessionDisconnected, service.Snapshot().Status)

	_, lErr := service.ActiveClient()
	require.ErrorIs(t, lErr, domain.ErrNotActive)
}

func TestSubscribeObservesLifecycle(t *testing.T) {
	signer := mocks.NewMockSignerAdapter(t)
	factory := mocks.NewMockAccountClientFactory(t)
	client := mocks.NewMockAccountClient(t)
	service := NewSessionService(signer, factory)

	signer.EXPECT().Authenticate(mockAnyContext()).Return(nil)
	factory.EXPECT().CreateAccountClient(mockAnyContext(), mock.AnythingOfType("ports.ProvisionConfig")).Return(client, nil)
	client.EXPECT().Address(mockAnyContext()).Return(testAccount, nil)
	client.EXPECT().Balance(mockAnyContext(), testAccount).Return(big.NewInt(1), nil)
	signer.EXPECT().IdentityInfo(mockAnyContext()).Return(ports.Identity{}, nil)

	ch, cancel := service.Subscribe()
	defer cancel()

	_, err := service.Connect(context.Background(), testConnectConfig())
	require.NoError(t, err)

	var seen []domain.SessionStatus
	for len(seen) < 2 {
		select {
		case status := <-ch:
			seen = append(seen, status)
		case <-time.After(time.Second):
			t.Fatalf("timed out, saw %v", seen)
		}
	}

	assert.Equal(t, []domain.SessionStatus{domain.SessionAuthenticating, domain.SessionActive}, seen)
}
