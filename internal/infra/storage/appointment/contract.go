package appointment

import "github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"

// DBExecutor общий интерфейс для *dbmetrics.DB и транзакции из контекста
type DBExecutor = dbmetrics.DBExecutor
