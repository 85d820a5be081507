package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"jembox-bot/internal/stories/users"
)

type registerRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	TelegramID      string `json:"telegramId"`
}

type loginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	TelegramID string `json:"telegramId"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Role    string `json:"role"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный запрос")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" ||
		req.ConfirmPassword == "" || req.TelegramID == "" {
		writeError(w, http.StatusBadRequest, "Все поля обязательны")
		return
	}
	if req.Password != req.ConfirmPassword {
		writeError(w, http.StatusBadRequest, "Пароли не совпадают")
		return
	}

	// Фронтенд шлет telegram id строкой
	telegramID, err := strconv.ParseInt(req.TelegramID, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Telegram ID должен быть числом")
		return
	}

	if !s.isChannelMember(telegramID) {
		writeError(w, http.StatusForbidden,
			"Вы не подписаны на канал магазина. Подпишитесь и попробуйте снова.")
		return
	}

	user, err := s.users.Register(r.Context(), users.RegisterParams{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		TelegramID: telegramID,
	})
	if err != nil {
		if errors.Is(err, users.ErrAlreadyExists) {
			writeError(w, http.StatusConflict, "Имя пользователя, email или Telegram ID уже заняты")
			return
		}
		s.logger.Error("ошибка регистрации", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Внутренняя ошибка. Напишите в поддержку: @jembox_support")
		return
	}

	s.logger.Info("зарегистрирован пользователь", slog.String("username", user.Username))
	writeJSON(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "Регистрация прошла успешно! Добро пожаловать в Jem Box.",
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный запрос")
		return
	}

	if req.Username == "" || req.Password == "" || req.TelegramID == "" {
		writeError(w, http.StatusBadRequest, "Логин, пароль и Telegram ID обязательны")
		return
	}

	telegramID, err := strconv.ParseInt(req.TelegramID, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Telegram ID должен быть числом")
		return
	}

	user, err := s.users.Authenticate(r.Context(), req.Username, req.Password, telegramID)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Неверный пароль или Telegram ID")
			return
		}
		s.logger.Error("ошибка входа", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Внутренняя ошибка. Напишите в поддержку: @jembox_support")
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Пользователь не найден")
		return
	}

	if !s.isChannelMember(telegramID) {
		writeError(w, http.StatusForbidden,
			"Вы отписались от канала магазина. Для доступа нужна подписка.")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		Message: "Вход выполнен! С возвращением.",
		Role:    string(user.Role),
	})
}
