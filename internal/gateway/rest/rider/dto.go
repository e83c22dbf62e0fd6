package rider

import "encoding/json"

type updateStatusRequest struct {
	CurrentStatus string `json:"currentStatus"`
}

type assignRiderRequest struct {
	Rider string `json:"rider"`
}

type withdrawRequest struct {
	RiderID   string `json:"riderId"`
	RiderName string `json:"riderName"`
	// сервер ждет число, а decimal по умолчанию сериализуется строкой
	Amount json.Number `json:"amount"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FCMToken string `json:"fcmToken,omitempty"`
}

type loginResponse struct {
	Token string `json:"token"`
	Rider struct {
		ID string `json:"id"`
	} `json:"rider"`
}

type errorResponse struct {
	Message string `json:"message"`
}

type signupRequest struct {
	UserName    string `json:"userName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
	University  string `json:"university"`
}

type signupResponse struct {
	NewRider struct {
		ID string `json:"_id"`
	} `json:"newRider"`
}
