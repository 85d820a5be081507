package purchases

import (
	"encoding/base64"
	"fmt"
)

func encodeScreenshot(raw []byte) string {
	return base64.StdEncoding.EncodeToString(raw)
}

func formatAnnouncement(p *Purchase) string {
	return fmt.Sprintf(`🛒 НОВАЯ ЗАЯВКА НА ПОКУПКУ

🆔 ID: #%d
👤 Пользователь: %s
🎬 Сервис: %s
📦 План: %s (%s)
💰 Цена: %s
🌍 Страна: %s
💳 Метод оплаты: %s

📅 Дата: %s

✅ Одобрить: /approve_%d
❌ Отклонить: /reject_%d`,
		p.ID, p.Username, p.Service, p.Plan, p.Duration,
		p.Price, p.Country, p.PaymentMethod,
		p.CreatedAt.Format("02.01.2006 15:04"),
		p.ID, p.ID)
}

func formatCancellation(p *Purchase) string {
	return fmt.Sprintf(`🚫 Заявка #%d отменена покупателем

👤 Пользователь: %s
🎬 Сервис: %s - %s`,
		p.ID, p.Username, p.Service, p.Plan)
}
