package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yourusername/napominalka-bot/models"
)

func TestAllowActionBurst(t *testing.T) {
	b, _ := newTestBot(&fakeStorage{})
	b.throttleBurst = 2
	b.throttleWindow = time.Minute

	// Две быстрые попытки проходят, третья молча отбрасывается
	require.True(t, b.allowAction(1, actionAddReminder))
	require.True(t, b.allowAction(1, actionAddReminder))
	require.False(t, b.allowAction(1, actionAddReminder))

	// Лимиты независимы по пользователям
	require.True(t, b.allowAction(2, actionAddReminder))
}

func TestAllowActionIndependentBudgets(t *testing.T) {
	b, _ := newTestBot(&fakeStorage{})
	b.throttleBurst = 2
	b.throttleWindow = time.Minute

	// Начало диалога не тратит бюджет ввода текста
	require.True(t, b.allowAction(1, actionAddReminder))
	require.True(t, b.allowAction(1, actionAddReminder))
	require.False(t, b.allowAction(1, actionAddReminder))

	require.True(t, b.allowAction(1, actionSubmitText))
	require.True(t, b.allowAction(1, actionSubmitText))
}

func TestThrottledStartDropped(t *testing.T) {
	storage := &fakeStorage{}
	b, sender := newTestBot(storage)
	b.throttleBurst = 2
	b.throttleWindow = time.Minute

	b.handleMessage(textMessage(1, btnAddReminder))
	require.Len(t, sender.sent, 1)

	// Повторные нажатия внутри диалога сохраняются как текст, поэтому
	// сначала выходим из него
	b.handleMessage(textMessage(1, btnCancel))
	sender.sent = nil

	// Второе нажатие тратит последний токен, третье уже не отвечает
	b.handleMessage(textMessage(1, btnAddReminder))
	require.Len(t, sender.sent, 1)

	b.handleMessage(textMessage(1, btnCancel))
	sender.sent = nil

	b.handleMessage(textMessage(1, btnAddReminder))
	require.Empty(t, sender.sent)
	_, exists := b.getUserState(1)
	require.False(t, exists)
}

func TestComposePairNotThrottled(t *testing.T) {
	storage := &fakeStorage{}
	b, _ := newTestBot(storage)
	b.throttleBurst = 2
	b.throttleWindow = time.Minute

	// Обычная последовательность "начать диалог, прислать текст"
	// дважды подряд не упирается в ограничитель
	for i := 0; i < 2; i++ {
		b.handleMessage(textMessage(1, btnAddReminder))
		b.handleMessage(textMessage(1, "текст"))

		state, exists := b.getUserState(1)
		require.True(t, exists)
		require.Equal(t, models.StateAwaitDate, state.State)

		b.handleMessage(textMessage(1, btnCancel))
	}
}
