package wallet

// Status is the coarse outcome shown to the user after a wallet operation.
type Status int

const (
	StatusOK    Status = 0
	StatusError Status = -1
)

// StatusFromCode maps a native status code. Unknown codes become StatusError.
func StatusFromCode(code int) Status {
	switch Status(code) {
	case StatusOK:
		return StatusOK
	default:
		return StatusError
	}
}

func (s Status) String() string {
	if s == StatusOK {
		return "ok"
	}
	return "error"
}

// TxStatus is the lifecycle state of a transaction.
type TxStatus int

const (
	TxPending TxStatus = iota
	TxInProgress
	TxCancelled
	TxCompleted
	TxFailed
	TxRegistered
	// TxStatusUnknown stands in for codes the engine sends that we do not know.
	TxStatusUnknown TxStatus = -1
)

var txStatusNames = map[TxStatus]string{
	TxPending:       "pending",
	TxInProgress:    "in progress",
	TxCancelled:     "cancelled",
	TxCompleted:     "completed",
	TxFailed:        "failed",
	TxRegistered:    "registered",
	TxStatusUnknown: "unknown",
}

func TxStatusFromCode(code int) TxStatus {
	s := TxStatus(code)
	if _, ok := txStatusNames[s]; !ok {
		return TxStatusUnknown
	}
	return s
}

func (s TxStatus) String() string {
	if name, ok := txStatusNames[s]; ok {
		return name
	}
	return txStatusNames[TxStatusUnknown]
}

// TxSender tells whether the wallet sent or received a transaction.
type TxSender int

const (
	TxReceived TxSender = iota
	TxSent
)

func TxSenderFromFlag(sender bool) TxSender {
	if sender {
		return TxSent
	}
	return TxReceived
}

func (s TxSender) String() string {
	if s == TxSent {
		return "sent"
	}
	return "received"
}

// UtxoStatus is the state of a coin.
type UtxoStatus int

const (
	UtxoUnconfirmed UtxoStatus = iota
	UtxoUnspent
	UtxoLocked
	UtxoSpent
	UtxoDraft
	UtxoStatusUnknown UtxoStatus = -1
)

var utxoStatusNames = map[UtxoStatus]string{
	UtxoUnconfirmed:   "unconfirmed",
	UtxoUnspent:       "unspent",
	UtxoLocked:        "locked",
	UtxoSpent:         "spent",
	UtxoDraft:         "draft",
	UtxoStatusUnknown: "unknown",
}

func UtxoStatusFromCode(code int) UtxoStatus {
	s := UtxoStatus(code)
	if _, ok := utxoStatusNames[s]; !ok {
		return UtxoStatusUnknown
	}
	return s
}

func (s UtxoStatus) String() string {
	if name, ok := utxoStatusNames[s]; ok {
		return name
	}
	return utxoStatusNames[UtxoStatusUnknown]
}

// KeyType is the derivation purpose of a coin's key.
type KeyType int

const (
	KeyRegular KeyType = iota
	KeyCoinbase
	KeyCommission
	KeyKernel
	KeyTypeUnknown KeyType = -1
)

var keyTypeNames = map[KeyType]string{
	KeyRegular:     "regular",
	KeyCoinbase:    "coinbase",
	KeyCommission:  "commission",
	KeyKernel:      "kernel",
	KeyTypeUnknown: "unknown",
}

func KeyTypeFromCode(code int) KeyType {
	k := KeyType(code)
	if _, ok := keyTypeNames[k]; !ok {
		return KeyTypeUnknown
	}
	return k
}

func (k KeyType) String() string {
	if name, ok := keyTypeNames[k]; ok {
		return name
	}
	return keyTypeNames[KeyTypeUnknown]
}
