package notify

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordDelivery_Counts(t *testing.T) {
	sent := deliveriesTotal.WithLabelValues("metrics-test", outcomeSent)
	failed := deliveriesTotal.WithLabelValues("metrics-test", outcomeFailed)
	beforeSent := testutil.ToFloat64(sent)
	beforeFailed := testutil.ToFloat64(failed)

	recordDelivery("metrics-test", outcomeSent, 120*time.Millisecond)
	recordDelivery("metrics-test", outcomeFailed, 2*time.Second)
	recordDelivery("metrics-test", outcomeSent, 80*time.Millisecond)

	assert.Equal(t, beforeSent+2, testutil.ToFloat64(sent))
	assert.Equal(t, beforeFailed+1, testutil.ToFloat64(failed))
}

func TestRecordDelivery_SkippedHasNoDuration(t *testing.T) {
	before := testutil.CollectAndCount(deliveryDuration)

	// 送信していない結果はヒストグラムに載せない
	recordDelivery("metrics-skip-only", outcomeOpen, 0)
	recordDelivery("metrics-skip-only", outcomeShutdown, 0)

	assert.Equal(t, before, testutil.CollectAndCount(deliveryDuration))
	assert.Equal(t, float64(1), testutil.ToFloat64(deliveriesTotal.WithLabelValues("metrics-skip-only", outcomeOpen)))
}
