package models

// Classifier thresholds follow the regulatory cold chain limits: positive
// storage at 4°C, tolerance up to 8°C, deliveries refused above 4°C, cooling
// from cooking temperature to 10°C within two hours, frying oil unusable
// from 24% polar compounds.
const (
	storageOKMaxC      = 4.0
	storageWarningMaxC = 8.0
	deliveryMaxC       = 4.0
	coolingMaxMinutes  = 120
	coolingTargetMaxC  = 10.0
	oilWarningTPM      = 20.0
	oilCriticalTPM     = 24.0
)

// ClassifyStorageTemp maps a storage temperature reading to its status.
func ClassifyStorageTemp(celsius float64) Status {
	switch {
	case celsius > storageWarningMaxC:
		return StatusCritical
	case celsius > storageOKMaxC:
		return StatusWarning
	default:
		return StatusOK
	}
}

// ClassifyDeliveryTemp accepts or refuses an incoming delivery on its core temperature.
func ClassifyDeliveryTemp(celsius float64) Status {
	if celsius > deliveryMaxC {
		return StatusRefused
	}
	return StatusOK
}

// ClassifyCooling checks a rapid-cooling cycle against the two-hour window
// and the 10°C target.
func ClassifyCooling(durationMinutes int, endTempC float64) Status {
	if durationMinutes <= coolingMaxMinutes && endTempC <= coolingTargetMaxC {
		return StatusOK
	}
	return StatusCritical
}

// ClassifyOil maps a polar-compound percentage to its status. A fryer whose
// oil was just replaced is compliant regardless of the measured value.
func ClassifyOil(tpmPercent float64, oilChanged bool) Status {
	if oilChanged {
		return StatusOK
	}
	switch {
	case tpmPercent >= oilCriticalTPM:
		return StatusCritical
	case tpmPercent >= oilWarningTPM:
		return StatusWarning
	default:
		return StatusOK
	}
}
