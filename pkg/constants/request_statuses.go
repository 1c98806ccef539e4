package constants

// --- СТАТУСЫ ЗАЯВОК НА ОБСЛУЖИВАНИЕ (совпадают со значениями в БД) ---
const (
	StatusNew        = "new"
	StatusInProgress = "in_progress"
	StatusRepaired   = "repaired"
	StatusScrap      = "scrap"
)

var RequestStatuses = []string{StatusNew, StatusInProgress, StatusRepaired, StatusScrap}

// Финальные статусы
var FinalStatuses = []string{
	StatusRepaired,
	StatusScrap,
}

func IsValidStatus(code string) bool {
	return contains(RequestStatuses, code)
}

func IsFinalStatus(code string) bool {
	return contains(FinalStatuses, code)
}

// allowedTransitions - направленный граф для строгого режима.
var allowedTransitions = map[string][]string{
	StatusNew:        {StatusInProgress},
	StatusInProgress: {StatusRepaired, StatusScrap},
}

// CanTransition проверяет переход по графу new -> in_progress -> {repaired, scrap}.
// Из финальных статусов переходов нет.
func CanTransition(from, to string) bool {
	return contains(allowedTransitions[from], to)
}

// --- ТИПЫ ЗАЯВОК ---
const (
	RequestTypeCorrective = "corrective"
	RequestTypePreventive = "preventive"
)

var RequestTypes = []string{RequestTypeCorrective, RequestTypePreventive}

func IsValidRequestType(code string) bool {
	return contains(RequestTypes, code)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
