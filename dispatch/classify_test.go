package dispatch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name       string
		httpStatus int
		appCode    int
		want       Kind
	}{
		{"unauthorized", 401, 0, KindAuthentication},
		{"forbidden", 403, 0, KindPermission},
		{"forbidden app code", 200, 1005, KindPermission},
		{"payment required", 402, 0, KindQuotaExceeded},
		{"plan quota app code", 200, 1009, KindQuotaExceeded},
		{"monthly quota app code", 429, 1011, KindQuotaExceeded},
		{"throttled", 429, 0, KindRateLimited},
		{"throttled app code", 429, 1008, KindRateLimited},
		{"bad request", 400, 0, KindInvalidArgument},
		{"invalid symbol", 400, 1002, KindInvalidArgument},
		{"invalid time range", 200, 1007, KindInvalidArgument},
		{"resource missing", 200, 1004, KindResourceUnavailable},
		{"server error", 500, 0, KindServerError},
		{"bad gateway", 502, 0, KindServerError},
		{"service unavailable", 503, 0, KindServerError},
		{"gateway timeout", 504, 0, KindServerError},
		{"connection failure", 0, 0, KindTransientNetwork},
		{"teapot", 418, 0, KindUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Classify(tc.httpStatus, tc.appCode))
		})
	}
}

func TestKindRetryable(t *testing.T) {
	require.True(t, KindRateLimited.Retryable())
	require.True(t, KindServerError.Retryable())
	require.True(t, KindTransientNetwork.Retryable())

	require.False(t, KindAuthentication.Retryable())
	require.False(t, KindPermission.Retryable())
	require.False(t, KindQuotaExceeded.Retryable())
	require.False(t, KindInvalidArgument.Retryable())
	require.False(t, KindResourceUnavailable.Retryable())
	require.False(t, KindUnknown.Retryable())
}
