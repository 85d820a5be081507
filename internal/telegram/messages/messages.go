package messages

import (
	"fmt"

	"jembox-bot/internal/stories/purchases"
	"jembox-bot/internal/stories/users"
)

// Общие
const (
	Error                   = "❌ Ошибка. Пожалуйста, попробуйте позже."
	ErrorCheckingAccount    = "❌ Не удалось проверить ваш аккаунт. Попробуйте через пару минут."
	ErrorCheckingPermission = "❌ Не удалось проверить ваши права. Попробуйте еще раз."
	NotRegistered           = "❌ Вы не зарегистрированы в системе."
)

// Права доступа
const (
	NoPermissionApprove = "❌ У вас нет прав одобрять покупки."
	NoPermissionReject  = "❌ У вас нет прав отклонять покупки."
	NotifyAdminsOnly    = "❌ Массовые уведомления доступны только администраторам."
	NotifyNoAccess      = "❌ У вас нет доступа к этой команде."
)

// Отмена
const (
	CancelDone    = "✅ Незавершенное действие отменено."
	CancelNothing = "ℹ️ У вас нет незавершенных действий."
)

// Валидация ответов оператора
const (
	CredentialsNoDelimiter = `❌ Неверный формат

Используйте формат: email|пароль

Пример:
netflix@gmail.com|Pass1234

Разделяйте данные символом | (вертикальная черта).`
	CredentialsTooManyParts = `❌ Неверный формат

Отправьте ровно два значения: email|пароль

Пример:
user@gmail.com|password123`
	CredentialsEmptyField = "❌ Email и пароль не могут быть пустыми."
	CredentialsBadEmail   = "❌ Email имеет неверный формат."
	ReasonTooShort        = "❌ Причина отказа должна быть не короче 10 символов."
)

// Ошибки обработки
const (
	ErrorApproving       = "❌ Не удалось одобрить покупку. Попробуйте еще раз."
	ErrorRejecting       = "❌ Не удалось отклонить покупку. Попробуйте еще раз."
	FlowErrorGettingData = "Ошибка получения данных диалога"
)

// Notify
const (
	NotifyUsage = `📢 Команда /notify

Использование: /notify текст сообщения

Сообщение получат все зарегистрированные пользователи.`
	NotifyErrorListingUsers = "❌ Не удалось получить список пользователей."
)

func FormatPurchaseNotFound(id int64) string {
	return fmt.Sprintf("❌ Заявка #%d не найдена", id)
}

func FormatAlreadyProcessed(status purchases.Status) string {
	return fmt.Sprintf("❌ Эта заявка уже обработана.\nТекущий статус: %s", status)
}

func FormatApprovalPrompt(id int64, service, plan, duration, price, username, country string) string {
	return fmt.Sprintf(`✅ Одобрение заявки #%d

📦 Сервис: %s
📋 План: %s
⏱ Срок: %s
💰 Цена: %s
👤 Пользователь: %s
🌍 Страна: %s

📝 Инструкция:
Отправьте данные аккаунта в формате:

email@example.com|пароль123

Пример:
netflix@gmail.com|Pass1234

⚠️ Разделяйте данные символом | (вертикальная черта)

Для отмены используйте /cancel`,
		id, service, plan, duration, price, username, country)
}

func FormatRejectionPrompt(id int64, service, plan, duration, price, username string) string {
	return fmt.Sprintf(`❌ Отклонение заявки #%d

📦 Сервис: %s
📋 План: %s
⏱ Срок: %s
💰 Цена: %s
👤 Пользователь: %s

📝 Отправьте причину отказа одним сообщением

Для отмены используйте /cancel`,
		id, service, plan, duration, price, username)
}

func FormatApprovalDone(id int64, username, email, password string) string {
	return fmt.Sprintf(`✅ Заявка #%d успешно одобрена

👤 Пользователь: %s
📧 Email: %s
🔑 Пароль: %s

✉️ Покупатель получил уведомление`,
		id, username, email, password)
}

func FormatRejectionDone(id int64, username, reason string) string {
	return fmt.Sprintf(`❌ Заявка #%d отклонена

👤 Пользователь: %s
📝 Причина: %s

✉️ Покупатель получил уведомление`,
		id, username, reason)
}

func FormatBuyerApproved(service, plan, duration, email, password string) string {
	return fmt.Sprintf(`🎉 Ваша покупка одобрена!

🎬 Сервис: %s
📦 План: %s
⏱ Срок: %s

🔐 Данные доступа:
📧 Email: %s
🔑 Пароль: %s

✅ Можете пользоваться сервисом
💡 Сохраните эти данные в надежном месте

Спасибо за покупку! 🚀`,
		service, plan, duration, email, password)
}

func FormatBuyerRejected(service, plan, reason string) string {
	return fmt.Sprintf(`❌ Ваша покупка отклонена

🎬 Сервис: %s
📦 План: %s

📝 Причина отказа:
%s

📞 Вопросы — в поддержку: @jembox_support`,
		service, plan, reason)
}

func FormatWelcomeUnregistered(firstName string, telegramID int64) string {
	return fmt.Sprintf(`❌ Вы не зарегистрированы в Jem Box

Привет, %s! Чтобы получать уведомления, сначала зарегистрируйтесь на нашей платформе.

🔗 Регистрация: jem-box.example.com

📱 Ваш Telegram ID: %d
Укажите его при регистрации, чтобы привязать аккаунт.`,
		firstName, telegramID)
}

func FormatWelcome(user *users.User) string {
	text := fmt.Sprintf(`🎉 Добро пожаловать в Jem Box, %s!

✅ Ваш аккаунт активен
%s
📱 Telegram ID: %d
📧 Email: %s

`,
		user.Username, roleBadge(user.Role), user.TelegramID, user.Email)

	if user.Role.IsOperator() {
		text += `📋 Доступные команды:
• /approve_ID — одобрить покупку
• /reject_ID — отклонить покупку
• /cancel — отменить незавершенное действие
`
		if user.Role == users.RoleAdmin {
			text += "• /notify сообщение — массовая рассылка\n"
		}
	} else {
		text += `Теперь вы будете получать уведомления:
• о новых сервисах и акциях
• о статусе ваших покупок
• о важных обновлениях
`
	}

	text += "\n🛒 Магазин: jem-box.example.com"
	return text
}

func FormatBroadcast(message string) string {
	return fmt.Sprintf("📢 Уведомление от Jem Box\n\n%s", message)
}

func FormatBroadcastStarted(total int) string {
	return fmt.Sprintf("📤 Отправляем уведомление %d пользователям...", total)
}

func FormatBroadcastDone(sent, failed, total int) string {
	return fmt.Sprintf(`✅ Рассылка завершена

📤 Отправлено: %d
❌ Не доставлено: %d
📊 Всего пользователей: %d`,
		sent, failed, total)
}

func FormatPendingReminder(count int, ids []int64) string {
	text := fmt.Sprintf("⏰ Необработанные заявки: %d\n\n", count)
	for _, id := range ids {
		text += fmt.Sprintf("• #%d — /approve_%d или /reject_%d\n", id, id, id)
	}
	return text
}

func roleBadge(role users.Role) string {
	switch role {
	case users.RoleAdmin:
		return "👑 АДМИН"
	case users.RoleSeller:
		return "💼 ПРОДАВЕЦ"
	default:
		return "👤 ПОЛЬЗОВАТЕЛЬ"
	}
}
