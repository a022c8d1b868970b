package notify

import (
	"fmt"

	"github.com/MrJamesThe3rd/fixnet/internal/repair"
)

const noPrice = "не указана"

// FormatMessage renders the human-readable summary of a repair request.
func FormatMessage(req *repair.Request) string {
	price := noPrice
	if req.EstimatedPrice != nil && *req.EstimatedPrice != "" {
		price = *req.EstimatedPrice
	}

	return fmt.Sprintf(`🔧 Новая заявка FixNet:

👤 Имя: %s
📞 Контакт: %s
📱 Устройство: %s %s
🔍 Проблема: %s
💰 Ориентировочная цена: %s

⏰ Время: %s
🆔 ID заявки: %s`,
		req.Name,
		req.Contact,
		req.DeviceBrand, req.DeviceModel,
		req.ProblemDescription,
		price,
		req.Timestamp.Format("02.01.2006 15:04"),
		req.ID,
	)
}
