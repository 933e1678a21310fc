package qr

import (
	"strings"

	skip2 "github.com/skip2/go-qrcode"
	yqr "github.com/yeqown/go-qrcode/v2"

	qrerrors "github.com/cristianadrielbraun/qrlogo/internal/errors"
)

// ECLevel is one of the four standard error correction levels.
type ECLevel int

const (
	ECLevelL ECLevel = iota
	ECLevelM
	ECLevelQ
	ECLevelH
)

var ecLevelNames = map[ECLevel]string{
	ECLevelL: "L",
	ECLevelM: "M",
	ECLevelQ: "Q",
	ECLevelH: "H",
}

// skip2 names Q "High" and H "Highest".
var matrixLevels = map[ECLevel]skip2.RecoveryLevel{
	ECLevelL: skip2.Low,
	ECLevelM: skip2.Medium,
	ECLevelQ: skip2.High,
	ECLevelH: skip2.Highest,
}

var styledLevels = map[ECLevel]yqr.EncodeOption{
	ECLevelL: yqr.WithErrorCorrectionLevel(yqr.ErrorCorrectionLow),
	ECLevelM: yqr.WithErrorCorrectionLevel(yqr.ErrorCorrectionMedium),
	ECLevelQ: yqr.WithErrorCorrectionLevel(yqr.ErrorCorrectionQuart),
	ECLevelH: yqr.WithErrorCorrectionLevel(yqr.ErrorCorrectionHighest),
}

// ParseECLevel accepts L, M, Q or H in any case. An empty string means L.
func ParseECLevel(s string) (ECLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "L":
		return ECLevelL, nil
	case "M":
		return ECLevelM, nil
	case "Q":
		return ECLevelQ, nil
	case "H":
		return ECLevelH, nil
	}
	return ECLevelL, qrerrors.ErrInvalidInput("error correction level", "must be one of L, M, Q, H, got "+s)
}

func (l ECLevel) String() string {
	if name, ok := ecLevelNames[l]; ok {
		return name
	}
	return "?"
}

// Levels lists all levels in increasing redundancy.
func Levels() []ECLevel {
	return []ECLevel{ECLevelL, ECLevelM, ECLevelQ, ECLevelH}
}
