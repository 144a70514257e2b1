package app

// User-facing texts. Kept in one place so the transports stay dumb.

const msgWelcome = `🎲 Welcome to Dice Room! 🎲

Commands:
/start - Start the bot
/create - Create a room
/join [code] - Join a room (example: /join ABC123)
/stats - Show everyone's last rolls
/leave - Leave the room
/help - Show help
/cancel - Cancel the current action`

const msgHelp = `📖 How to use the bot:

1️⃣ Creating a room:
Send /create, pick the number of players and enter your name

2️⃣ Joining a room:
Send /join [room code]
Example: /join ABC123
Then enter your name

3️⃣ Rolling dice:
Once you are in, use the buttons at the bottom of the screen
Tap a die to roll it!
You can roll without a room too, but nothing is recorded

4️⃣ Last rolls:
/stats - shows everyone's most recent roll

5️⃣ Leaving:
/leave - leave the room

6️⃣ Cancelling:
/cancel - cancel the current command`

const msgDiceKeyboard = "🎲 Use the buttons below to roll dice!\n" +
	"Or type a dice token, for example: d6\n" +
	"Available dice: d4, d6, d8, d10, d12, d20, d100"

const (
	msgAskPlayerCount = "👥 How many players for the room (1 to 20)?"
	msgBadPlayerCount = "❌ The player count must be a number from 1 to 20! Try again or send /cancel:"
	msgAskName        = "👤 Now enter your name:"
	msgEmptyName      = "❌ The name cannot be empty! Enter your name:"
	msgCancelled      = "❌ Operation cancelled"
	msgJoinUsage      = "❌ Wrong format! Use: /join [room code]"
	msgRoomInactive   = "❌ The room is not active!"
	msgRoomFull       = "❌ The room is full!"
	msgAlreadyInRoom  = "❌ You are already in this room!"
	msgRoomFound      = "✅ Room found! 👤 Now enter your name:"
	msgJoinExpired    = "❌ Something went wrong! Try joining again with /join"
	msgRoomGone       = "❌ The room no longer exists!"
	msgJoinFailed     = "❌ Could not join the room (it may be full)"
	msgCreateFirst    = "❌ Create or join a room first!"
	msgNotInRoomStats = "❌ You are not in a room! Join a game with /join"
	msgNotInRoom      = "❌ You are not in a room!"
	msgLeftRoom       = "✅ You left the room!"
	msgStatsHeader    = "📊 Last rolls:\n\n"
	msgStatsNoRolls   = "no rolls yet"
)
