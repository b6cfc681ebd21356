package permissions

// Bit — одна способность участника канала. Хранится в Member как целое число.
type Bit int64

const (
	Admin Bit = 1 << iota
	SendMessages
	AttachFiles
	ManageMessages
	ManageChannel
	BanMembers
)

// Маски по умолчанию
const (
	DefaultMember = SendMessages | AttachFiles
	ChannelOwner  = Admin | SendMessages | AttachFiles | ManageMessages | ManageChannel | BanMembers
)

// HasAny проверяет, установлен ли хотя бы один из запрошенных битов
func HasAny(mask Bit, bits ...Bit) bool {
	for _, b := range bits {
		if mask&b != 0 {
			return true
		}
	}
	return false
}

// HasAll проверяет, установлены ли все запрошенные биты
func HasAll(mask Bit, bits ...Bit) bool {
	for _, b := range bits {
		if mask&b == 0 {
			return false
		}
	}
	return true
}
