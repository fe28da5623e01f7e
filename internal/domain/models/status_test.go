package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStorageTemp(t *testing.T) {
	cases := []struct {
		name string
		temp float64
		want Status
	}{
		{"deep freeze", -21.0, StatusOK},
		{"cold room", 3.2, StatusOK},
		{"upper ok boundary", 4.0, StatusOK},
		{"just above ok", 4.1, StatusWarning},
		{"mid warning", 6.0, StatusWarning},
		{"upper warning boundary", 8.0, StatusWarning},
		{"just above warning", 8.1, StatusCritical},
		{"broken fridge", 15.0, StatusCritical},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyStorageTemp(tc.temp))
		})
	}
}

func TestClassifyStorageTempIsDeterministic(t *testing.T) {
	assert.Equal(t, ClassifyStorageTemp(6.0), ClassifyStorageTemp(6.0))
}

func TestClassifyDeliveryTemp(t *testing.T) {
	assert.Equal(t, StatusOK, ClassifyDeliveryTemp(2.1))
	assert.Equal(t, StatusOK, ClassifyDeliveryTemp(4.0))
	assert.Equal(t, StatusRefused, ClassifyDeliveryTemp(4.5))
	assert.Equal(t, StatusRefused, ClassifyDeliveryTemp(20.0))
}

func TestClassifyCooling(t *testing.T) {
	cases := []struct {
		name     string
		duration int
		endTemp  float64
		want     Status
	}{
		{"fast and cold", 60, 8.0, StatusOK},
		{"exact limits", 120, 10.0, StatusOK},
		{"too slow", 121, 8.0, StatusCritical},
		{"too warm", 90, 10.5, StatusCritical},
		{"both out", 180, 20.0, StatusCritical},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyCooling(tc.duration, tc.endTemp))
		})
	}
}

func TestClassifyOil(t *testing.T) {
	assert.Equal(t, StatusOK, ClassifyOil(12.0, false))
	assert.Equal(t, StatusOK, ClassifyOil(19.9, false))
	assert.Equal(t, StatusWarning, ClassifyOil(20.0, false))
	assert.Equal(t, StatusWarning, ClassifyOil(23.9, false))
	assert.Equal(t, StatusCritical, ClassifyOil(24.0, false))
	assert.Equal(t, StatusCritical, ClassifyOil(35.0, false))
}

func TestClassifyOilChangedAlwaysOK(t *testing.T) {
	for _, tpm := range []float64{0, 19.9, 20.0, 24.0, 80.0} {
		assert.Equal(t, StatusOK, ClassifyOil(tpm, true), "tpm %.1f", tpm)
	}
}
