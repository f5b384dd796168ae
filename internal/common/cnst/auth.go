package cnst

// RoleOperator is the only role allowed to use the database console
const RoleOperator = "operator"

const (
	CtxKeyClaims = "claims"
)
