package entity

// Roles válidos en los tokens.
const (
	RoleAdmin        = "admin"        // todo
	RolePlanificador = "planificador" // fichas técnicas, pedidos, descargos
	RoleBodeguero    = "bodeguero"    // compras, movimientos, importación WB
)

// ValidRole indica si role es un rol conocido.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RolePlanificador, RoleBodeguero:
		return true
	}
	return false
}
