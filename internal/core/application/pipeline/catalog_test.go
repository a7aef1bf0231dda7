package pipeline_test

import (
	"context"
	"testing"

	"console/internal/core/application/pipeline"

	"github.com/stretchr/testify/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceTypeCatalog_FallbackBeforeFirstRefresh(t *testing.T) {
	gw := new(MockCatalogGateway)
	c := pipeline.NewServiceTypeCatalog(gw, nil)

	assert.Equal(t, []string{"Standard", "Express"}, c.ServiceTypes())
}

func TestServiceTypeCatalog_RefreshReplacesCache(t *testing.T) {
	gw := new(MockCatalogGateway)
	gw.On("ServiceTypes", mock.Anything, "").
		Return([]string{"Standard", "Express", "Same Day"}, nil).Once()

	c := pipeline.NewServiceTypeCatalog(gw, nil)
	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, []string{"Standard", "Express", "Same Day"}, c.ServiceTypes())
}

func TestServiceTypeCatalog_FailedRefreshKeepsLastGoodValue(t *testing.T) {
	gw := new(MockCatalogGateway)
	gw.On("ServiceTypes", mock.Anything, "").
		Return([]string{"Standard", "Express", "Priority"}, nil).Once()
	gw.On("ServiceTypes", mock.Anything, "").
		Return(nil, remoteErr("catalog unavailable", 503)).Once()

	c := pipeline.NewServiceTypeCatalog(gw, nil)
	require.NoError(t, c.Refresh(context.Background()))
	require.Error(t, c.Refresh(context.Background()))
	assert.Equal(t, []string{"Standard", "Express", "Priority"}, c.ServiceTypes())
}

func TestServiceTypeCatalog_EmptyRefreshKeepsCache(t *testing.T) {
	gw := new(MockCatalogGateway)
	gw.On("ServiceTypes", mock.Anything, "").Return([]string{}, nil).Once()

	c := pipeline.NewServiceTypeCatalog(gw, nil)
	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, []string{"Standard", "Express"}, c.ServiceTypes())
}
