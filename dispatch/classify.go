package dispatch

// Classify maps an HTTP status and a CoinMarketCap application error code
// to a failure kind. It is a pure function; appCode 0 means the envelope
// carried no error and only the HTTP status counts. A zero status with a
// zero code means the failure happened below HTTP (connection error,
// timeout) and is transient.
func Classify(httpStatus, appCode int) Kind {
	switch appCode {
	case 402, 1009, 1010, 1011:
		return KindQuotaExceeded
	case 403, 1005:
		return KindPermission
	case 1001, 1002, 1003, 1006, 1007:
		return KindInvalidArgument
	case 1004:
		return KindResourceUnavailable
	case 1008:
		return KindRateLimited
	}

	switch {
	case httpStatus == 400:
		return KindInvalidArgument
	case httpStatus == 401:
		return KindAuthentication
	case httpStatus == 402:
		return KindQuotaExceeded
	case httpStatus == 403:
		return KindPermission
	case httpStatus == 429:
		return KindRateLimited
	case httpStatus >= 500 && httpStatus <= 599:
		return KindServerError
	case httpStatus == 0:
		return KindTransientNetwork
	}

	return KindUnknown
}
