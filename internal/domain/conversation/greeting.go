package conversation

import "time"

// Greeting saludo según la hora local: 5–11 buenos días, 12–17 buenas
// tardes, el resto buenas noches.
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return "¡Buenos días!"
	case h >= 12 && h < 18:
		return "¡Buenas tardes!"
	default:
		return "¡Buenas noches!"
	}
}

// WelcomeMessage mensaje inicial de la sesión: saludo, presentación de Sally
// y petición del número de documento.
func WelcomeMessage(t time.Time) string {
	return Greeting(t) + " ¿Cómo está? Soy Sally, su asistente personal de medicamentos. " +
		"Estoy aquí para ayudarle con consultas sobre medicamentos y sedes médicas.\n\n" +
		"Para comenzar, por favor compártame su número de documento de identidad."
}
