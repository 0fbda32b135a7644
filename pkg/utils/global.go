package utils

//FriendlyClass is the name of the class matching our alliance's bumpers
const FriendlyClass = "friendly"

//OpponentClass is the name of the class matching the opposing alliance's bumpers
const OpponentClass = "opponent"

//NoteClass is the name of the class matching the orange game piece
const NoteClass = "note"

//FriendlyKey is the table key friendly coordinates are published under
const FriendlyKey = "friendly coordinates:"

//OpponentKey is the table key opponent coordinates are published under
const OpponentKey = "opponent coordinates:"

//NoteKey is the table key note coordinates are published under
const NoteKey = "note coordinates:"

//FriendlyLabel is the text plotted above a friendly bounding box
const FriendlyLabel = "Friendly!"

//OpponentLabel is the text plotted above an opponent bounding box
const OpponentLabel = "Enemy!"

//NoteLabel is the text plotted above a note bounding box
const NoteLabel = "Note!"

//DefaultBoxColor is the hex color of plotted bounding boxes (BGR (255,255,0) in OpenCV terms)
const DefaultBoxColor = "#00FFFF"

//DefaultKernelSize is the side of the square structuring element used for erode/dilate
const DefaultKernelSize = 7

//QuitKey is the key that stops the frame loop when a display window is focused
const QuitKey = 'q'

//ImageExtensions are the file extensions handled by still image detection
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".bmp"}
